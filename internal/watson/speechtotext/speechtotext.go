// Package speechtotext streams audio to the speech-to-text service over a
// WebSocket and reports transcripts through a callback.
package speechtotext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/phildougherty/watsonassist/internal/watson"
)

const (
	// DefaultModel is the recognition model used when none is given
	DefaultModel = "en-US_BroadbandModel"

	chunkSize        = 8192
	closeGracePeriod = time.Second
)

// RecognizeOptions configures one recognition session
type RecognizeOptions struct {
	ContentType       string
	Model             string
	Continuous        bool
	InterimResults    bool
	InactivityTimeout int
}

// SpeechAlternative is one candidate transcript
type SpeechAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Transcript is one recognized utterance
type Transcript struct {
	Final        bool                `json:"final"`
	Alternatives []SpeechAlternative `json:"alternatives"`
}

// SpeechResults is a results frame sent by the service
type SpeechResults struct {
	ResultIndex int          `json:"result_index"`
	Results     []Transcript `json:"results"`
}

// FirstTranscript returns the first alternative of the first result, or ""
func (r *SpeechResults) FirstTranscript() string {
	if r == nil || len(r.Results) == 0 || len(r.Results[0].Alternatives) == 0 {
		return ""
	}
	return r.Results[0].Alternatives[0].Transcript
}

// IsFinal reports whether the first result is final
func (r *SpeechResults) IsFinal() bool {
	return r != nil && len(r.Results) > 0 && r.Results[0].Final
}

// RecognizeCallback receives session events. OnDisconnected is always the last call.
type RecognizeCallback interface {
	OnConnected()
	OnTranscription(results *SpeechResults)
	OnError(err error)
	OnDisconnected()
}

type startMessage struct {
	Action            string `json:"action"`
	ContentType       string `json:"content-type"`
	Continuous        bool   `json:"continuous"`
	InterimResults    bool   `json:"interim_results"`
	InactivityTimeout int    `json:"inactivity_timeout"`
}

type stopMessage struct {
	Action string `json:"action"`
}

// serverMessage is the union of the frames the service sends
type serverMessage struct {
	State string `json:"state"`
	Error string `json:"error"`
	SpeechResults
}

// Service runs recognition sessions
type Service struct {
	client *watson.Client
	dialer *websocket.Dialer
}

// New creates a recognition service. connectTimeout bounds the WebSocket handshake.
func New(client *watson.Client, connectTimeout time.Duration) *Service {
	return &Service{
		client: client,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: connectTimeout,
		},
	}
}

// URL returns the WebSocket URL of the recognize endpoint for model
func (s *Service) URL(model string) string {
	u := s.client.URL("/v1/recognize", url.Values{"model": {model}})
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	return u.String()
}

// Recognize streams audio to the service until the audio ends, the service
// ends the session (inactivity or error) or ctx is cancelled. If audio is an
// io.Closer it is closed when the session ends. Errors are reported both to
// cb.OnError and as the return value; cancellation of ctx is not an error.
func (s *Service) Recognize(ctx context.Context, audio io.Reader, opts RecognizeOptions, cb RecognizeCallback) error {
	defer cb.OnDisconnected()

	err := s.recognize(ctx, audio, opts, cb)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil
		}
		cb.OnError(err)
	}
	return err
}

func (s *Service) recognize(ctx context.Context, audio io.Reader, opts RecognizeOptions, cb RecognizeCallback) error {
	log := s.client.Logger()
	closeAudio := func() {}
	if c, ok := audio.(io.Closer); ok {
		var once sync.Once
		closeAudio = func() { once.Do(func() { c.Close() }) }
	}
	defer closeAudio()

	if err := s.client.CheckCredentials(); err != nil {
		return err
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.URL(opts.Model), s.client.AuthHeader())
	if err != nil {
		if resp != nil && resp.StatusCode >= 300 {
			var body []byte
			if resp.Body != nil {
				body, _ = io.ReadAll(io.LimitReader(resp.Body, 64*1024))
			}
			return watson.ParseErrorBody(s.client.Service(), resp.StatusCode, body)
		}
		return fmt.Errorf("failed to connect to %s: %w", s.client.Service(), err)
	}
	defer conn.Close()

	log.Info("Recognition session connected", "model", opts.Model, "contentType", opts.ContentType)
	cb.OnConnected()

	start, err := json.Marshal(startMessage{
		Action:            "start",
		ContentType:       opts.ContentType,
		Continuous:        opts.Continuous,
		InterimResults:    opts.InterimResults,
		InactivityTimeout: opts.InactivityTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal start message: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, start); err != nil {
		return fmt.Errorf("failed to send start message: %w", err)
	}

	sessionCtx, endSession := context.WithCancel(ctx)
	defer endSession()
	g, gctx := errgroup.WithContext(sessionCtx)

	// Unblocks both pumps once the session is over.
	go func() {
		<-gctx.Done()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGracePeriod))
		conn.Close()
		closeAudio()
	}()

	g.Go(func() error {
		return s.sendAudio(gctx, conn, audio)
	})
	g.Go(func() error {
		err := s.readResults(gctx, conn, cb)
		endSession()
		return err
	})

	err = g.Wait()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	log.Info("Recognition session ended", "error", err)
	return err
}

func (s *Service) sendAudio(ctx context.Context, conn *websocket.Conn, audio io.Reader) error {
	buf := make([]byte, chunkSize)
	sent := 0
	for {
		n, err := audio.Read(buf)
		if n > 0 {
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("failed to send audio: %w", werr)
			}
			sent += n
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to read audio: %w", err)
			}
			s.client.Logger().V(1).Info("Audio stream ended", "bytes", sent)
			stop, _ := json.Marshal(stopMessage{Action: "stop"})
			if werr := conn.WriteMessage(websocket.TextMessage, stop); werr != nil && ctx.Err() == nil {
				return fmt.Errorf("failed to send stop message: %w", werr)
			}
			return nil
		}
	}
}

// readResults dispatches server frames until the second "listening" state,
// which marks the end of the utterance stream.
func (s *Service) readResults(ctx context.Context, conn *websocket.Conn, cb RecognizeCallback) error {
	listening := 0
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("failed to read from %s: %w", s.client.Service(), err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("failed to decode %s message: %w", s.client.Service(), err)
		}

		switch {
		case msg.Error != "":
			return watson.NewServiceError(s.client.Service(), 0, "session_error", msg.Error)
		case msg.State == "listening":
			listening++
			if listening > 1 {
				return nil
			}
		case len(msg.Results) > 0:
			results := msg.SpeechResults
			cb.OnTranscription(&results)
		}
	}
}
