package postgres

import (
	session "github.com/schoolerp/session"
	"github.com/schoolerp/session/credentials"
	"github.com/schoolerp/session/verification"
)

var (
	_ credentials.UserStore   = &Driver{}
	_ verification.TokenStore = &Driver{}
	_ session.AccessReader    = &Driver{}
)
