package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognitoidp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"imageshare-backend/internal/identity"
)

// Provider implements identity.Provider against an AWS Cognito user pool
// app client configured with a client secret.
type Provider struct {
	client       *cognitoidp.Client
	clientID     string
	clientSecret string
}

// New creates a Cognito-backed identity provider.
func New(ctx context.Context, region, clientID, clientSecret string) (*Provider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("cognito client id and secret are required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Provider{
		client:       cognitoidp.NewFromConfig(cfg),
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

// SignUp registers a new pending account.
func (p *Provider) SignUp(ctx context.Context, username, password, email string) (string, error) {
	out, err := p.client.SignUp(ctx, &cognitoidp.SignUpInput{
		ClientId:   aws.String(p.clientID),
		SecretHash: aws.String(p.secretHash(username)),
		Username:   aws.String(username),
		Password:   aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: sign up: %v", identity.ErrProvider, err)
	}
	return aws.ToString(out.UserSub), nil
}

// ConfirmSignUp finalizes a pending account.
func (p *Provider) ConfirmSignUp(ctx context.Context, username, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cognitoidp.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		SecretHash:       aws.String(p.secretHash(username)),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return fmt.Errorf("%w: confirm sign up: %v", identity.ErrProvider, err)
	}
	return nil
}

// SignIn runs the password auth flow and returns the token set.
func (p *Provider) SignIn(ctx context.Context, username, password string) (identity.Tokens, error) {
	out, err := p.client.InitiateAuth(ctx, &cognitoidp.InitiateAuthInput{
		ClientId: aws.String(p.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME":    username,
			"PASSWORD":    password,
			"SECRET_HASH": p.secretHash(username),
		},
	})
	if err != nil {
		return identity.Tokens{}, fmt.Errorf("%w: sign in: %v", identity.ErrProvider, err)
	}
	if out.AuthenticationResult == nil {
		return identity.Tokens{}, fmt.Errorf("%w: sign in: no authentication result", identity.ErrProvider)
	}
	return identity.Tokens{
		ID:      aws.ToString(out.AuthenticationResult.IdToken),
		Access:  aws.ToString(out.AuthenticationResult.AccessToken),
		Refresh: aws.ToString(out.AuthenticationResult.RefreshToken),
	}, nil
}

// VerifyToken resolves an access token to the user it belongs to.
func (p *Provider) VerifyToken(ctx context.Context, accessToken string) (identity.UserInfo, error) {
	out, err := p.client.GetUser(ctx, &cognitoidp.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return identity.UserInfo{}, fmt.Errorf("%w: verify token: %v", identity.ErrProvider, err)
	}

	attrs := make(map[string]string, len(out.UserAttributes))
	for _, attr := range out.UserAttributes {
		attrs[aws.ToString(attr.Name)] = aws.ToString(attr.Value)
	}
	return identity.UserInfo{
		Username:   aws.ToString(out.Username),
		Attributes: attrs,
	}, nil
}

// secretHash computes the per-username keyed hash Cognito requires for app
// clients with a secret: base64(HMAC-SHA256(secret, username + clientID)).
func (p *Provider) secretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(p.clientSecret))
	mac.Write([]byte(username + p.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

var _ identity.Provider = (*Provider)(nil)
