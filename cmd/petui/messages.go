package main

// StateChangedMsg is sent when the controller reports a state change
type StateChangedMsg struct{}

// LookupDoneMsg is sent when a lookup request returns
type LookupDoneMsg struct{}

// BrowserOpenedMsg is sent after trying to open a reference link
type BrowserOpenedMsg struct {
	URL string
	Err error
}
