package models

import "golang.org/x/oauth2"

type Flash struct {
	Category string // success | error | info
	Message  string
	Link     string
}

// Session is the per-browser state kept server side.
type Session struct {
	ID              string
	Authenticated   bool
	OAuthState      string
	UploadInvoiceNo string
	Token           *oauth2.Token
	Flashes         []Flash
}
