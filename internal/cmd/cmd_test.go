package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phildougherty/watsonassist/internal/assistant"
	"github.com/phildougherty/watsonassist/internal/audio"
)

var envKeys = []string{
	"SPEECH_TEXT_USERNAME", "SPEECH_TEXT_PASSWORD", "SPEECH_TEXT_ENDPOINT",
	"TEXT_SPEECH_USERNAME", "TEXT_SPEECH_PASSWORD", "TEXT_SPEECH_ENDPOINT",
	"LANGUAGE_TRANSLATION_USERNAME", "LANGUAGE_TRANSLATION_PASSWORD", "LANGUAGE_TRANSLATION_ENDPOINT",
	"VISUAL_RECOGNITION_API_KEY", "VISUAL_RECOGNITION_ENDPOINT",
	"WATSON_TARGET_LANGUAGE", "WATSON_VOICE", "WATSON_RECOGNITION_MODEL", "WATSON_CAMERA_COMMAND",
	"WATSON_LOG_LEVEL", "WATSON_LOG_FILE", "VOICE_SAMPLE_RATE", "VOICE_FRAME_LENGTH",
}

// isolate clears service environment and runs the test in an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand("1.2.3")

	assert.Equal(t, "watsonassist", root.Use)
	assert.Equal(t, "1.2.3", root.Version)
	assert.NotNil(t, root.RunE)

	for _, flag := range []string{"config", "verbose", "log-file"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "watsonassist.yaml", root.PersistentFlags().Lookup("config").DefValue)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"run", "translate", "synthesize", "recognize", "detect-faces", "check", "config"} {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote watsonassist.yaml")
	assert.FileExists(t, filepath.Join(dir, "watsonassist.yaml"))

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	t.Setenv("TEXT_SPEECH_USERNAME", "tts-user")
	t.Setenv("TEXT_SPEECH_PASSWORD", "tts-secret")
	out, _, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "tts-user")
	assert.Contains(t, out, "****")
	assert.NotContains(t, out, "tts-secret")
}

func TestCheckReport(t *testing.T) {
	isolate(t)
	t.Setenv("WATSON_CAMERA_COMMAND", "definitely-not-a-camera {file}")

	out, _, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "## Credentials")
	assert.Contains(t, out, "`SPEECH_TEXT_USERNAME`")
	assert.Contains(t, out, "Audio System Check")
	assert.Contains(t, out, "`definitely-not-a-camera` not found")
}

func TestTranslate(t *testing.T) {
	isolate(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/translate", r.URL.Path)
		var body struct {
			Text   []string `json:"text"`
			Source string   `json:"source"`
			Target string   `json:"target"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"good morning"}, body.Text)
		assert.Equal(t, "en", body.Source)
		assert.Equal(t, "fr", body.Target)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations":[{"translation":"bonjour"}],"word_count":2,"character_count":12}`))
	}))
	defer server.Close()

	t.Setenv("LANGUAGE_TRANSLATION_ENDPOINT", server.URL)
	t.Setenv("LANGUAGE_TRANSLATION_USERNAME", "u")
	t.Setenv("LANGUAGE_TRANSLATION_PASSWORD", "p")

	out, _, err := execute(t, "translate", "--target", "French", "good", "morning")
	require.NoError(t, err)
	assert.Equal(t, "bonjour\n", out)
}

func TestTranslate_InvalidTarget(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "translate", "--target", "de", "hello")
	require.Error(t, err)
}

func TestSynthesizeToFile(t *testing.T) {
	dir := isolate(t)

	wav := []byte("RIFF....WAVEfmt data")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/synthesize", r.URL.Path)
		assert.Equal(t, "fr-FR_ReneeVoice", r.URL.Query().Get("voice"))
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(wav)
	}))
	defer server.Close()

	t.Setenv("TEXT_SPEECH_ENDPOINT", server.URL)
	t.Setenv("TEXT_SPEECH_USERNAME", "u")
	t.Setenv("TEXT_SPEECH_PASSWORD", "p")

	output := filepath.Join(dir, "out.wav")
	out, _, err := execute(t, "say", "--voice", "fr-FR_ReneeVoice", "-o", output, "bonjour")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 20 bytes")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, wav, data)
}

func TestDetectFaces_File(t *testing.T) {
	dir := isolate(t)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	path := filepath.Join(dir, "face.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/detect_faces", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"images":[{"faces":[{"age":{"min":18,"max":24},"gender":{"gender":"FEMALE"}}]}],"images_processed":1}`))
	}))
	defer server.Close()

	t.Setenv("VISUAL_RECOGNITION_ENDPOINT", server.URL)
	t.Setenv("VISUAL_RECOGNITION_API_KEY", "key")

	out, _, err := execute(t, "detect-faces", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Faces:  1")
	assert.Contains(t, out, "Age:    18-24")
	assert.Contains(t, out, "Gender: FEMALE")
}

func TestDetectFaces_Args(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "detect-faces")
	require.Error(t, err)

	_, _, err = execute(t, "detect-faces", "--selfie", "extra.png")
	require.Error(t, err)
}

func TestRecognizeFile(t *testing.T) {
	dir := isolate(t)

	var wav bytes.Buffer
	samples := make([]byte, 3200)
	require.NoError(t, audio.EncodeWAVHeader(&wav, 16000, 1, uint32(len(samples))))
	wav.Write(samples)
	path := filepath.Join(dir, "speech.wav")
	require.NoError(t, os.WriteFile(path, wav.Bytes(), 0600))

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		_, data, err := conn.ReadMessage()
		if !assert.NoError(t, err) {
			return
		}
		assert.Contains(t, string(data), `"content-type":"audio/wav"`)
		conn.WriteMessage(websocket.TextMessage, []byte(`{"state":"listening"}`))

		var received int
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if msgType == websocket.BinaryMessage {
				received += len(data)
				continue
			}
			break
		}
		assert.Equal(t, wav.Len(), received)

		conn.WriteMessage(websocket.TextMessage, []byte(`{"result_index":0,"results":[{"final":false,"alternatives":[{"transcript":"hello"}]}]}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"result_index":0,"results":[{"final":true,"alternatives":[{"transcript":"hello world "}]}]}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"state":"listening"}`))
		conn.ReadMessage()
	}))
	defer server.Close()

	t.Setenv("SPEECH_TEXT_ENDPOINT", server.URL)
	t.Setenv("SPEECH_TEXT_USERNAME", "u")
	t.Setenv("SPEECH_TEXT_PASSWORD", "p")

	out, _, err := execute(t, "recognize", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "hello world \n", out)

	out, _, err = execute(t, "listen", "--file", path, "--interim")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"... hello", "hello world"}, lines)
}

func TestRecognizeFile_NotWAV(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not audio"), 0600))

	_, _, err := execute(t, "recognize", "--file", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrNotWAV)
}

func TestPrintFaces(t *testing.T) {
	var buf bytes.Buffer
	printFaces(&buf, assistant.Faces{})
	assert.Equal(t, "No faces found\n", buf.String())

	buf.Reset()
	printFaces(&buf, assistant.Faces{Count: 2, AgeMin: 35, AgeMax: 44})
	assert.Contains(t, buf.String(), "Faces:  2")
	assert.Contains(t, buf.String(), "Gender: unknown")
}
