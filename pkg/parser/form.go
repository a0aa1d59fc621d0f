package parser

import (
	"fmt"
	"strings"
)

// FormVerb is one action of the interactive form
type FormVerb string

const (
	VerbSell      FormVerb = "sell"
	VerbBuy       FormVerb = "buy"
	VerbSellToken FormVerb = "sell-token"
	VerbBuyToken  FormVerb = "buy-token"
	VerbFlip      FormVerb = "flip"
	VerbTab       FormVerb = "tab"
	VerbConnect   FormVerb = "connect"
	VerbTokens    FormVerb = "tokens"
	VerbShow      FormVerb = "show"
	VerbHelp      FormVerb = "help"
	VerbQuit      FormVerb = "quit"
)

// FormCommand is a parsed line of interactive input
type FormCommand struct {
	Verb FormVerb
	Arg  string
}

var verbAliases = map[string]FormVerb{
	"sell":       VerbSell,
	"buy":        VerbBuy,
	"sell-token": VerbSellToken,
	"from":       VerbSellToken,
	"buy-token":  VerbBuyToken,
	"to":         VerbBuyToken,
	"flip":       VerbFlip,
	"switch":     VerbFlip,
	"tab":        VerbTab,
	"connect":    VerbConnect,
	"tokens":     VerbTokens,
	"ls":         VerbTokens,
	"show":       VerbShow,
	"help":       VerbHelp,
	"?":          VerbHelp,
	"quit":       VerbQuit,
	"exit":       VerbQuit,
	"q":          VerbQuit,
}

// ParseFormCommand parses one line typed into the interactive form.
// An empty line maps to "show".
func ParseFormCommand(line string) (*FormCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return &FormCommand{Verb: VerbShow}, nil
	}

	verb, ok := verbAliases[strings.ToLower(fields[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command '%s' (type 'help' for a list)", fields[0])
	}

	// Amount fields accept arbitrary text and sanitize it later, so keep the whole rest
	arg := strings.TrimSpace(strings.Join(fields[1:], " "))

	switch verb {
	case VerbSellToken, VerbBuyToken, VerbTab:
		if arg == "" {
			return nil, fmt.Errorf("'%s' needs an argument", verb)
		}
	case VerbFlip, VerbConnect, VerbTokens, VerbShow, VerbHelp, VerbQuit:
		if arg != "" {
			return nil, fmt.Errorf("'%s' takes no argument", verb)
		}
	}

	return &FormCommand{Verb: verb, Arg: arg}, nil
}
