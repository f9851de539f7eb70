package google

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const clientFixture = `{"installed":{"client_id":"id","client_secret":"sec","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`

func clearGoogleEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SPREADSHEET_ID",
		"GOOGLE_SHEET_NAME",
		"GOOGLE_SERVICE_ACCOUNT_JSON",
		"GOOGLE_SERVICE_ACCOUNT_FILE",
		"GOOGLE_APPLICATION_CREDENTIALS",
		"GOOGLE_OAUTH_CLIENT_JSON",
		"GOOGLE_OAUTH_CLIENT_FILE",
		"GOOGLE_OAUTH_TOKEN_FILE",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	clearGoogleEnv(t)

	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatal("expected error without GOOGLE_SPREADSHEET_ID")
	}
}

func TestOauthTokenSourceFromFiles(t *testing.T) {
	clearGoogleEnv(t)
	t.Setenv("GOOGLE_OAUTH_CLIENT_FILE", writeFile(t, "client.json", clientFixture))
	t.Setenv("GOOGLE_OAUTH_TOKEN_FILE", writeFile(t, "token.json",
		`{"access_token":"x","token_type":"Bearer","refresh_token":"r"}`))

	ts, err := oauthTokenSource(context.Background())
	if err != nil {
		t.Fatalf("oauthTokenSource: %v", err)
	}
	if ts == nil {
		t.Fatal("expected a token source")
	}
}

func TestOauthTokenSourceFromInlineClient(t *testing.T) {
	clearGoogleEnv(t)
	t.Setenv("GOOGLE_OAUTH_CLIENT_JSON", clientFixture)
	t.Setenv("GOOGLE_OAUTH_TOKEN_FILE", writeFile(t, "token.json",
		`{"access_token":"x","token_type":"Bearer"}`))

	if _, err := oauthTokenSource(context.Background()); err != nil {
		t.Fatalf("oauthTokenSource: %v", err)
	}
}

func TestOauthTokenSourceMissingClient(t *testing.T) {
	clearGoogleEnv(t)

	_, err := oauthTokenSource(context.Background())
	if err == nil {
		t.Fatal("expected error without client credentials")
	}
	if !strings.Contains(err.Error(), "GOOGLE_OAUTH_CLIENT_JSON") {
		t.Fatalf("error should name the credential variables, got %q", err)
	}
}

func TestOauthTokenSourceBadToken(t *testing.T) {
	clearGoogleEnv(t)
	t.Setenv("GOOGLE_OAUTH_CLIENT_JSON", clientFixture)
	t.Setenv("GOOGLE_OAUTH_TOKEN_FILE", writeFile(t, "token.json", "not json"))

	if _, err := oauthTokenSource(context.Background()); err == nil {
		t.Fatal("expected error for malformed token file")
	}
}

func TestOauthTokenSourceMissingTokenFile(t *testing.T) {
	clearGoogleEnv(t)
	t.Setenv("GOOGLE_OAUTH_CLIENT_JSON", clientFixture)
	t.Setenv("GOOGLE_OAUTH_TOKEN_FILE", filepath.Join(t.TempDir(), "absent.json"))

	if _, err := oauthTokenSource(context.Background()); err == nil {
		t.Fatal("expected error for missing token file")
	}
}
