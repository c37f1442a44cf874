package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geminiSummaryReply = "```json\n{\"summary\":\"A short summary.\",\"whyItMatters\":\"It matters.\",\"tags\":[\"ai\",\"policy\"]}\n```"

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestProfileAddThenListMasksKey(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"profile", "add",
		"--name", "Reading list",
		"--key", "secret_abcdefgh1234",
		"--database", "db-1",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Reading list")

	stdout, _, err = executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "profiles: 1")
	assert.Contains(t, stdout, "Reading list")
	assert.Contains(t, stdout, "db-1")
	assert.Contains(t, stdout, "********1234")
	assert.NotContains(t, stdout, "secret_abcdefgh1234")
}

func TestProfileListEmpty(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No profiles configured.")
}

func TestProfileAddRequiresAllFields(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(),
		"profile", "add",
		"--name", "Reading list",
		"--database", "db-1",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please fill in all fields")
	assert.Contains(t, err.Error(), "credential is required")
}

func TestProfileEditKeepsIDAndUnchangedFields(t *testing.T) {
	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_one", "db-1")

	_, _, err := executeCLI(t, home, "profile", "edit", id, "--name", "Work")
	require.NoError(t, err)

	profiles := listProfilesJSON(t, home)
	require.Len(t, profiles, 1)
	assert.Equal(t, id, profiles[0]["ID"])
	assert.Equal(t, "Work", profiles[0]["Name"])
	assert.Equal(t, "secret_one", profiles[0]["Credential"])
	assert.Equal(t, "db-1", profiles[0]["TargetCollectionID"])
}

func TestProfileEditUnknownID(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "profile", "edit", "missing", "--name", "Work")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestProfileDeleteRemovesProfile(t *testing.T) {
	home := t.TempDir()
	keep := addProfile(t, home, "Keep", "secret_one", "db-1")
	drop := addProfile(t, home, "Drop", "secret_two", "db-2")

	stdout, _, err := executeCLI(t, home, "profile", "delete", drop)
	require.NoError(t, err)
	assert.Contains(t, stdout, "deleted profile "+drop)

	profiles := listProfilesJSON(t, home)
	require.Len(t, profiles, 1)
	assert.Equal(t, keep, profiles[0]["ID"])
}

func TestAPIKeySetRejectsBlankKey(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "apikey", "set", "   ")
	require.Error(t, err)
	assert.Equal(t, "Please enter a Google AI API key", err.Error())
}

func TestAPIKeySetPersistsKey(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "apikey", "set", " gk-123 ")
	require.NoError(t, err)
	assert.Contains(t, stdout, "API key saved")

	data, err := os.ReadFile(filepath.Join(home, ".pagepush", "settings.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "googleApiKey")
	assert.Contains(t, string(data), "gk-123")
	assert.NotContains(t, string(data), " gk-123 ")
}

func TestStartupMigratesLegacySettings(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLegacySettingsFixture(home))

	stdout, _, err := executeCLI(t, home, "profile", "list", "--show-keys")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Default Database")
	assert.Contains(t, stdout, "secret_legacy")
	assert.Contains(t, stdout, "db-legacy")
}

func TestMigrateCommandReportsOutcome(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLegacySettingsFixture(home))

	stdout, _, err := executeCLI(t, home, "migrate")
	require.NoError(t, err)
	assert.Contains(t, stdout, `migrated legacy settings to profile "Default Database"`)

	stdout, _, err = executeCLI(t, home, "migrate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nothing to migrate")
}

func TestPushJSONSavesRecordToNotion(t *testing.T) {
	gemini := newGeminiServer(t, "gk-123", geminiSummaryReply, 0)
	notion := newNotionServer(t, http.StatusOK, `{"object":"page"}`)

	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_nk", "db-1")
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	textFile := writeTextFile(t, "Example article body")

	stdout, _, err := executeCLI(t, home,
		"push",
		"--url", "https://example.com/a",
		"--text-file", textFile,
		"--profile", id,
		"--json",
	)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"URL": "https://example.com/a"`)
	assert.Contains(t, stdout, `"Summary": "A short summary."`)
	assert.Contains(t, stdout, `"Status": "Not Read"`)

	assert.Contains(t, gemini.prompt(), "Article Content: Example article body")

	req := notion.lastRequest()
	assert.Equal(t, "Bearer secret_nk", req.authorization)
	parent, ok := req.body["parent"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "db-1", parent["database_id"])
}

func TestPushReadsTextFromStdin(t *testing.T) {
	gemini := newGeminiServer(t, "gk-123", geminiSummaryReply, 0)
	newNotionServer(t, http.StatusOK, `{}`)

	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_nk", "db-1")
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	_, _, err = executeCLIWithInput(t, home, strings.NewReader("Piped article body"),
		"push", "--url", "https://example.com/a", "--text-file", "-", "--profile", id, "--json",
	)
	require.NoError(t, err)
	assert.Contains(t, gemini.prompt(), "Piped article body")
}

func TestPushShowsProgressAndRendersResult(t *testing.T) {
	newGeminiServer(t, "gk-123", geminiSummaryReply, 200*time.Millisecond)
	newNotionServer(t, http.StatusOK, `{}`)

	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_nk", "db-1")
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	stdout, stderr, err := executeCLI(t, home,
		"push",
		"--url", "https://example.com/a",
		"--text-file", writeTextFile(t, "Example article body"),
		"--profile", id,
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Generating summary")
	assert.Contains(t, stdout, "Page saved to Notion successfully!")
	assert.Contains(t, stdout, "Saved to Notion")
	assert.Contains(t, stdout, "#ai")
}

func TestPushRequiresSelectedProfile(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"push", "--url", "https://example.com/a", "--text-file", writeTextFile(t, "body"), "--json",
	)
	require.Error(t, err)
	assert.Equal(t, "Please select a database", err.Error())

	_, _, err = executeCLI(t, home,
		"push", "--url", "https://example.com/a", "--text-file", writeTextFile(t, "body"), "--profile", "nope", "--json",
	)
	require.Error(t, err)
	assert.Equal(t, "Selected database not found", err.Error())
}

func TestPushRequiresPageURL(t *testing.T) {
	gemini := newGeminiServer(t, "gk-123", geminiSummaryReply, 0)
	notion := newNotionServer(t, http.StatusOK, `{}`)

	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_nk", "db-1")
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	for _, args := range [][]string{
		{"push", "--profile", id},
		{"push", "--text-file", writeTextFile(t, "body"), "--profile", id, "--json"},
		{"push", "--url", "  ", "--text-file", writeTextFile(t, "body"), "--profile", id, "--json"},
	} {
		_, _, err := executeCLI(t, home, args...)
		require.Error(t, err)
		assert.Equal(t, "--url is required", err.Error())
	}
	assert.Empty(t, gemini.prompt())
	assert.Zero(t, notion.count())
}

func TestPushSurfacesGeminiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"error":{"code":429,"message":"Quota exceeded"}}`)
	}))
	t.Cleanup(server.Close)
	t.Setenv("PP_GEMINI_BASE_URL", server.URL)

	notion := newNotionServer(t, http.StatusOK, `{}`)

	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_nk", "db-1")
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home,
		"push", "--url", "https://example.com/a", "--text-file", writeTextFile(t, "body"), "--profile", id, "--json",
	)
	require.Error(t, err)
	assert.Equal(t, "Failed to get summary from Google AI: Quota exceeded", err.Error())
	assert.Zero(t, notion.count())
}

func TestPushRendersSummaryWhenNotionFails(t *testing.T) {
	newGeminiServer(t, "gk-123", geminiSummaryReply, 0)
	newNotionServer(t, http.StatusUnauthorized, `{"object":"error","message":"API token is invalid."}`)

	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_nk", "db-1")
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home,
		"push", "--url", "https://example.com/a", "--text-file", writeTextFile(t, "body"), "--profile", id,
	)
	require.Error(t, err)
	assert.Equal(t, "Failed to save to Notion: API token is invalid.", err.Error())
	assert.Contains(t, stdout, "A short summary.")
}

func TestPushFetchesPageWhenNoTextGiven(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, `<html><head><title>T</title></head><body><p>Fetched article body</p></body></html>`)
	}))
	t.Cleanup(page.Close)

	gemini := newGeminiServer(t, "gk-123", geminiSummaryReply, 0)
	newNotionServer(t, http.StatusOK, `{}`)

	home := t.TempDir()
	id := addProfile(t, home, "Reading list", "secret_nk", "db-1")
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "push", "--url", page.URL, "--profile", id, "--json")
	require.NoError(t, err)
	assert.Contains(t, gemini.prompt(), "Fetched article body")
}

func TestSummarizePrintsSummaryJSON(t *testing.T) {
	newGeminiServer(t, "gk-123", geminiSummaryReply, 0)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "summarize", "--text-file", writeTextFile(t, "Example article body"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "A short summary.", got["summary"])
	assert.Equal(t, "It matters.", got["whyItMatters"])
	assert.Equal(t, []any{"ai", "policy"}, got["tags"])
}

func TestSummarizeWithoutAPIKey(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "summarize", "--text-file", writeTextFile(t, "body"))
	require.Error(t, err)
	assert.Equal(t, "Google AI API key not set. Run 'pp apikey set <key>' to set it.", err.Error())
}

func TestCorruptProfileListReportsSettingsPath(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeCorruptProfilesFixture(home))

	_, _, err := executeCLI(t, home, "profile", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(home, ".pagepush", "settings.toml"))
	assert.Contains(t, err.Error(), "decode profiles")
	assert.Contains(t, err.Error(), "pp profile clear")
}

func TestCorruptProfileListCanBeRecovered(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeCorruptProfilesFixture(home))

	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "profile", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cleared all profiles")

	stdout, _, err = executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No profiles configured.")

	data, err := os.ReadFile(filepath.Join(home, ".pagepush", "settings.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "gk-123")
}

func TestSQLiteBackendPersistsProfiles(t *testing.T) {
	t.Setenv("PP_SETTINGS_BACKEND", "sqlite")
	home := t.TempDir()

	addProfile(t, home, "Reading list", "secret_one", "db-1")

	profiles := listProfilesJSON(t, home)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Reading list", profiles[0]["Name"])
	assert.FileExists(t, filepath.Join(home, ".pagepush", "settings.db"))
}

func TestUnsupportedSettingsBackend(t *testing.T) {
	t.Setenv("PP_SETTINGS_BACKEND", "etcd")

	_, _, err := executeCLI(t, t.TempDir(), "profile", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported settings backend "etcd"`)
}

func TestSettingsPathFromEnvironment(t *testing.T) {
	home := t.TempDir()
	settingsPath := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv("PP_SETTINGS_PATH", settingsPath)

	_, _, err := executeCLI(t, home, "apikey", "set", "gk-123")
	require.NoError(t, err)
	assert.FileExists(t, settingsPath)
	assert.NoFileExists(t, filepath.Join(home, ".pagepush", "settings.toml"))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, strings.NewReader(""), args...)
}

func executeCLIWithInput(t *testing.T, home string, input io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(input)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func addProfile(t *testing.T, home, name, key, database string) string {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "profile", "add", "--name", name, "--key", key, "--database", database)
	require.NoError(t, err)

	id, _, ok := strings.Cut(strings.TrimSpace(stdout), "\t")
	require.True(t, ok, "unexpected profile add output %q", stdout)
	return id
}

func listProfilesJSON(t *testing.T, home string) []map[string]any {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "profile", "list", "--json")
	require.NoError(t, err)

	var profiles []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &profiles))
	return profiles
}

func writeTextFile(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func writeLegacySettingsFixture(home string) error {
	configDir := filepath.Join(home, ".pagepush")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	settings := `version = 1

[values]
notionKey = "secret_legacy"
databaseId = "db-legacy"
`

	return os.WriteFile(filepath.Join(configDir, "settings.toml"), []byte(settings), 0o600)
}

func writeCorruptProfilesFixture(home string) error {
	configDir := filepath.Join(home, ".pagepush")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	settings := `version = 1

[values]
databases = "{not json"
`

	return os.WriteFile(filepath.Join(configDir, "settings.toml"), []byte(settings), 0o600)
}

type geminiServer struct {
	mu      sync.Mutex
	prompts []string
}

func (s *geminiServer) prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

func newGeminiServer(t *testing.T, apiKey, reply string, delay time.Duration) *geminiServer {
	t.Helper()

	recorder := &geminiServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash-latest:generateContent", r.URL.Path)
		assert.Equal(t, apiKey, r.URL.Query().Get("key"))

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) && len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			recorder.mu.Lock()
			recorder.prompts = append(recorder.prompts, body.Contents[0].Parts[0].Text)
			recorder.mu.Unlock()
		}

		time.Sleep(delay)

		payload, err := json.Marshal(map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": reply}}}},
			},
		})
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	t.Setenv("PP_GEMINI_BASE_URL", server.URL)

	return recorder
}

type notionRequest struct {
	authorization string
	body          map[string]any
}

type notionServer struct {
	mu       sync.Mutex
	requests []notionRequest
}

func (s *notionServer) lastRequest() notionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return notionRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *notionServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func newNotionServer(t *testing.T, status int, response string) *notionServer {
	t.Helper()

	recorder := &notionServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pages", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		recorder.mu.Lock()
		recorder.requests = append(recorder.requests, notionRequest{authorization: r.Header.Get("Authorization"), body: body})
		recorder.mu.Unlock()

		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, response)
	}))
	t.Cleanup(server.Close)
	t.Setenv("PP_NOTION_BASE_URL", server.URL)

	return recorder
}

func TestSplitListDropsBlanks(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example"}, splitList(" http://localhost:3000, ,https://app.example,"))
}
