package builtin

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/blackcoderx/surge/internal/funcs"
)

// OAuth2Token obtains a bearer token via the OAuth2 client-credentials flow
// and returns "Bearer <token>", for use in a request's Authorization
// header. Grounded on the teacher's shared/auth.go clientCredentialsFlow,
// reworked as a four-argument expression-language function:
// ${__oauth2Token(tokenURL, clientID, clientSecret, scope)}.
type OAuth2Token struct {
	tokenURL, clientID, clientSecret, scope *funcs.CompoundVariable
}

func (f *OAuth2Token) RefKey() string { return "__oauth2Token" }

func (f *OAuth2Token) SetParameters(args []*funcs.CompoundVariable) error {
	if err := checkParamCount(f.RefKey(), args, 3, 4); err != nil {
		return err
	}
	f.tokenURL, f.clientID, f.clientSecret = args[0], args[1], args[2]
	if len(args) == 4 {
		f.scope = args[3]
	}
	return nil
}

func (f *OAuth2Token) Execute(ctx funcs.EvalContext) (string, error) {
	tokenURL, err := execArg(f.tokenURL, ctx)
	if err != nil {
		return "", err
	}
	clientID, err := execArg(f.clientID, ctx)
	if err != nil {
		return "", err
	}
	clientSecret, err := execArg(f.clientSecret, ctx)
	if err != nil {
		return "", err
	}
	var scopes []string
	if f.scope != nil {
		raw, err := execArg(f.scope, ctx)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(raw) != "" {
			scopes = strings.Split(raw, ",")
		}
	}

	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}

	token, err := cfg.Token(context.Background())
	if err != nil {
		return "", fmt.Errorf("oauth2 client_credentials flow failed: %w", err)
	}
	return "Bearer " + token.AccessToken, nil
}
