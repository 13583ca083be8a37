// Command demo wires a boruta.Server the way a host application would
// and drives one resource-owner-password token through introspection, a
// userinfo fetch and revocation, printing every outcome along the way.
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/chulkilee/boruta-auth"
	"github.com/chulkilee/boruta-auth/internal/app"
	"github.com/chulkilee/boruta-auth/internal/config"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.MustLoad()

	ctx := context.Background()
	a, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Error("failed to wire application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	sink := &printingApplication{log: log}

	log.Info("requesting a token via the password grant")
	a.Server.Token(ctx, &boruta.Envelope{
		BodyParams: map[string]string{
			"grant_type": "password",
			"client_id":  app.DemoClientID.String(),
			"username":   app.DemoUsername,
			"password":   app.DemoPassword,
			"scope":      "profile email",
		},
		Headers: map[string]string{
			"authorization": basicAuth(app.DemoClientID.String(), app.DemoClientSecret),
		},
	}, sink)

	if sink.accessToken == "" {
		log.Error("no access token issued, stopping demo")
		os.Exit(1)
	}

	log.Info("introspecting the issued token")
	a.Server.Introspect(ctx, &boruta.Envelope{
		BodyParams: map[string]string{"client_id": app.DemoClientID.String(), "token": sink.accessToken},
		Headers: map[string]string{
			"authorization": basicAuth(app.DemoClientID.String(), app.DemoClientSecret),
		},
	}, sink)

	log.Info("fetching userinfo")
	a.Server.Userinfo(ctx, &boruta.UserinfoRequest{
		Authorization: "Bearer " + sink.accessToken,
	}, sink)

	log.Info("revoking the token")
	a.Server.Revoke(ctx, &boruta.Envelope{
		BodyParams: map[string]string{"client_id": app.DemoClientID.String(), "token": sink.accessToken},
		Headers: map[string]string{
			"authorization": basicAuth(app.DemoClientID.String(), app.DemoClientSecret),
		},
	}, sink)
}

func basicAuth(clientID, clientSecret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(clientID+":"+clientSecret))
}

// printingApplication implements boruta.Application by logging every
// outcome, the way a thin HTTP adapter's terminal handler would before
// translating an outcome into a response.
type printingApplication struct {
	log         *slog.Logger
	accessToken string
}

func (p *printingApplication) AuthorizeSuccess(resp *boruta.AuthorizeResponse) {
	p.log.Info("authorize success", "type", resp.Type, "expires_in", resp.ExpiresIn)
}

func (p *printingApplication) AuthorizeError(err *boruta.Error) {
	p.log.Error("authorize error", "code", err.Code, "description", err.Description)
}

func (p *printingApplication) TokenSuccess(resp *boruta.TokenResponse) {
	p.accessToken = resp.AccessToken
	p.log.Info("token success", "scope", resp.Scope, "expires_in", resp.ExpiresIn,
		"has_refresh_token", resp.RefreshToken != "")
}

func (p *printingApplication) TokenError(err *boruta.Error) {
	p.log.Error("token error", "code", err.Code, "description", err.Description)
}

func (p *printingApplication) IntrospectSuccess(resp *boruta.IntrospectResponse) {
	p.log.Info("introspect success", "active", resp.Active, "sub", resp.Sub, "scope", resp.Scope)
}

func (p *printingApplication) IntrospectError(err *boruta.Error) {
	p.log.Error("introspect error", "code", err.Code, "description", err.Description)
}

func (p *printingApplication) UserinfoFetched(claims map[string]interface{}) {
	p.log.Info("userinfo fetched", "claims", fmt.Sprintf("%v", claims))
}

func (p *printingApplication) Unauthorized(err *boruta.Error) {
	p.log.Error("unauthorized", "code", err.Code, "description", err.Description)
}

func (p *printingApplication) RevokeSuccess() {
	p.log.Info("revoke success")
}

func (p *printingApplication) RevokeError(err *boruta.Error) {
	p.log.Error("revoke error", "code", err.Code, "description", err.Description)
}
