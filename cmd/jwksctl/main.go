package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("JWKS_SERVER_URL", "http://localhost:8080")
		out     = envOr("JWKS_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "jwksctl",
		Short: "CLI para el JWKS server (key set, tokens, health)",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servidor (env JWKS_SERVER_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}

	// jwks: key set publicado
	jwksCmd := &cobra.Command{
		Use:   "jwks",
		Short: "Trae el JWKS publicado",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl.OutFormat = "json"
			status, body, err := cl.do("GET", "/.well-known/jwks.json", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("jwks falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	// token: pide un token firmado
	var username, password string
	var expired bool
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Pide un token firmado (POST /auth)",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]string{
				"username": username,
				"password": password,
			})
			path := "/auth"
			if expired {
				path += "?expired=true"
			}
			status, respBody, err := cl.do("POST", path, body)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("token falló: status=%d body=%s", status, string(respBody))
			}
			cl.print(status, respBody)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&username, "username", "dev", "username para el claim sub")
	tokenCmd.Flags().StringVar(&password, "password", "dev", "password (no se verifica)")
	tokenCmd.Flags().BoolVar(&expired, "expired", false, "pedir un token firmado con una clave expirada")

	// health: readiness del servidor
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Chequea readiness del servidor",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/readyz", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("no ready: status=%d body=%s", status, string(body))
			}
			fmt.Println("ok")
			return nil
		},
	}

	root.AddCommand(jwksCmd, tokenCmd, healthCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
