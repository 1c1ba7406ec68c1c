package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"waterbill-server/confs"
)

// redirect URI registered for the OAuth playground refresh-token flow.
const gmailRedirectURI = "https://developers.google.com/oauthplayground"

// GmailNotifier sends OTP mail through the Gmail API using an OAuth2
// refresh token. Access tokens are minted lazily by the token source.
type GmailNotifier struct {
	tokenSource oauth2.TokenSource
	from        string
	logger      zerolog.Logger
}

func NewGmailNotifier(ctx context.Context, cfg *confs.Config, logger zerolog.Logger) *GmailNotifier {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  gmailRedirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.GoogleRefreshToken})

	return &GmailNotifier{
		tokenSource: oauth2.ReuseTokenSource(nil, ts),
		from:        cfg.EmailUser,
		logger:      logger,
	}
}

func (n *GmailNotifier) SendOTP(email, name, code string) error {
	ctx := context.Background()

	svc, err := gmail.NewService(ctx, option.WithTokenSource(n.tokenSource))
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to create gmail service")
		return err
	}

	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		n.from, email, otpSubject, otpHTML(name, code))

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := svc.Users.Messages.Send("me", msg).Do(); err != nil {
		n.logger.Error().Err(err).Str("to", email).Msg("failed to send OTP email")
		return err
	}
	return nil
}
