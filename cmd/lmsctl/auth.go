package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dlrkawo/aitutor-lms/backend"
	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
	"github.com/dlrkawo/aitutor-lms/internal/probe"
	"github.com/dlrkawo/aitutor-lms/state"
)

var errNotLoggedIn = errors.New("not logged in; run lmsctl login")

func newSignupCmd(o *rootOptions) *cobra.Command {
	var req client.SignupRequest
	var role string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			auth := state.NewAuth(cmd.Context(), b.Auth, b.Tokens)
			defer auth.Close()

			req.Role = client.Role(role)
			return emitMessage(cmd, auth.Signup(req))
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&req.FullName, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&role, "role", string(client.RoleStudent), "STUDENT or TEACHER")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd(o *rootOptions) *cobra.Command {
	var req client.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			auth := state.NewAuth(cmd.Context(), b.Auth, b.Tokens)
			defer auth.Close()

			if res := auth.Login(req); !res.Success {
				return res.Err
			}
			return emitResult(cmd, auth.Me())
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			auth := state.NewAuth(cmd.Context(), b.Auth, b.Tokens)
			defer auth.Close()

			if res := auth.Logout(); !res.Success {
				return res.Err
			}
			return emit(cmd, map[string]string{"message": "logged out"})
		},
	}
}

func newWhoamiCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			auth := state.NewAuth(cmd.Context(), b.Auth, b.Tokens)
			defer auth.Close()

			res := auth.Init()
			if res.Success && res.Data == nil {
				return errNotLoggedIn
			}
			return emitResult(cmd, res)
		},
	}
}

type tokenOutput struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role,omitempty"`
	IssuedAt  time.Time `json:"issuedAt,omitzero"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	Expired   bool      `json:"expired"`
}

func newTokenCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Decode the stored access token (unverified)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, closer, err := backend.OpenTokenStore(o.cfg)
			if err != nil {
				return err
			}
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}

			tok, err := tokens.Token()
			if err != nil {
				return err
			}
			if tok == "" {
				return errNotLoggedIn
			}
			claims, err := tokenstore.Claims(tok)
			if err != nil {
				return err
			}
			return emit(cmd, tokenOutput{
				Subject:   claims.Subject,
				Role:      claims.Role,
				IssuedAt:  claims.IssuedAt,
				ExpiresAt: claims.ExpiresAt,
				Expired:   claims.Expired(time.Now()),
			})
		},
	}
}

type pingOutput struct {
	Mode string `json:"mode"`
	*probe.Report
}

func newPingCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend answers through the configured address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := probe.New(o.cfg.BaseURL, o.cfg.HTTPTimeout).Probe(cmd.Context())
			if err != nil {
				return err
			}
			if err := emit(cmd, pingOutput{Mode: o.cfg.Mode, Report: report}); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%s is %s", report.BaseURL, report.Status)
			}
			return nil
		},
	}
}
