package swap

import (
	"errors"
	"fmt"
	"strings"
)

// NoticeKind defines how a notice is rendered
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// Notice is a short message shown to the user instead of performing an action
type Notice struct {
	Message string     `json:"message" yaml:"message"`
	Kind    NoticeKind `json:"type" yaml:"type"`
}

// Tabs are the form's navigation entries, in display order
var Tabs = []string{"Swap", "Limit", "Send", "Buy"}

// ErrUnknownTab is returned for a tab that is not in Tabs
var ErrUnknownTab = errors.New("unknown tab")

// FindTab returns the canonical tab name, ignoring case
func FindTab(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, tab := range Tabs {
		if strings.EqualFold(tab, name) {
			return tab, nil
		}
	}
	return "", fmt.Errorf("%w: %s (available: %s)", ErrUnknownTab, name, strings.Join(Tabs, ", "))
}

// TabNotice is shown when a tab is selected. None of the tabs are implemented.
func TabNotice(name string) (Notice, error) {
	tab, err := FindTab(name)
	if err != nil {
		return Notice{Message: err.Error(), Kind: NoticeError}, err
	}
	return Notice{
		Message: fmt.Sprintf("%s feature not available at the moment.", tab),
		Kind:    NoticeInfo,
	}, nil
}

// ConnectWalletNotice is shown in place of a wallet connection
func ConnectWalletNotice() Notice {
	return Notice{
		Message: "Wallet connection is not available at the moment. Please try again later.",
		Kind:    NoticeInfo,
	}
}
