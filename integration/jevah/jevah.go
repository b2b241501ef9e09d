// Package jevah implements the Integrator interface for the Jevah account service, providing view history synchronization.
package jevah

import (
	"strings"

	"github.com/jevah-cli/jevah/key"
	"github.com/spf13/viper"
)

type Jevah struct {
	token string
}

// New initializes a new Jevah account service integration instance.
func New() *Jevah {
	return &Jevah{}
}

func (j *Jevah) base() string {
	return strings.TrimRight(viper.GetString(key.APIBaseURL), "/")
}

// AuthURL returns the OAuth2 authorization endpoint for the Jevah account service.
func (j *Jevah) AuthURL() string {
	return j.base() + "/oauth/authorize?client_id=" + jevahClientID + "&response_type=code&redirect_uri=" + jevahRedirectURI
}
