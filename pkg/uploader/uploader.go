// Package uploader is the client side of the club media upload pipeline. It
// requests a write credential from the application server, streams the file
// directly to object storage, and falls back to a server-proxied upload when
// the direct transfer fails and the file is small enough to carry through the
// application server.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

const (
	// MaxUploadBytes mirrors the server-side hard ceiling for a single object.
	MaxUploadBytes int64 = 200 << 20

	// ProxyLimitBytes gates the fallback: files at or above this size are not
	// retried through the application server, which has its own body-size and
	// execution-duration limits.
	ProxyLimitBytes int64 = 50 << 20
)

// State is the phase an upload attempt is in. Transitions:
//
//	Idle → RequestingCredential → DirectUploading → {Succeeded | ServerUploading | Failed}
//	ServerUploading → {Succeeded | Failed}
//
// The fallback only ever starts after the direct attempt has definitively
// terminated, and only for files under ProxyLimitBytes.
type State int

const (
	StateIdle State = iota
	StateRequestingCredential
	StateDirectUploading
	StateServerUploading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequestingCredential:
		return "requesting_credential"
	case StateDirectUploading:
		return "direct_uploading"
	case StateServerUploading:
		return "server_uploading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of an upload. Upload never panics;
// every failure path resolves to {Success: false, Error: reason}. State is the
// terminal attempt state (StateSucceeded or StateFailed) for callers that log
// or meter upload attempts.
type Outcome struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
	State   State  `json:"-"`
}

// Input describes the file to upload. Size must be the exact byte count of
// Body; Body is rewound before each transport attempt.
type Input struct {
	FileName    string
	ContentType string
	Size        int64
	Folder      string
	Body        io.ReadSeeker
}

// Client talks to the clubmedia upload API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a Client for the API at baseURL. A nil httpc falls back to
// http.DefaultClient.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// grant mirrors the presign endpoint's response.
type grant struct {
	Success      bool              `json:"success"`
	PresignedURL string            `json:"presignedUrl"`
	PublicURL    string            `json:"publicUrl"`
	Key          string            `json:"key"`
	Headers      map[string]string `json:"headers"`
	Error        string            `json:"error"`
}

// serverResult mirrors the proxied upload and deletion endpoints' responses.
type serverResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Error   string `json:"error"`
}

// Upload runs one upload attempt to a terminal Outcome: credential request,
// direct PUT, and — for files under ProxyLimitBytes — a single proxied retry.
// onProgress may be nil. Progress restarts at 0 for the fallback attempt.
//
// Known limitation, accepted by design: if the direct PUT actually lands in the
// store but its acknowledgement is lost, the fallback stores the bytes again
// under a fresh key and the first object is orphaned. Nothing reconciles that.
func (c *Client) Upload(ctx context.Context, in Input, onProgress ProgressFunc) Outcome {
	a := &attempt{client: c, in: in, onProgress: onProgress, state: StateIdle}
	return a.run(ctx)
}

// attempt owns the state of a single logical upload. Uploads run sequentially
// within an attempt; concurrent uploads each get their own attempt and key, so
// no locking is needed.
type attempt struct {
	client     *Client
	in         Input
	onProgress ProgressFunc
	state      State
}

func (a *attempt) to(s State) {
	a.state = s
}

// finish records the terminal transition and stamps it on the outcome.
func (a *attempt) finish(out Outcome) Outcome {
	if out.Success {
		a.to(StateSucceeded)
	} else {
		a.to(StateFailed)
	}
	out.State = a.state
	return out
}

func (a *attempt) run(ctx context.Context) Outcome {
	if a.in.Body == nil {
		return a.finish(Outcome{Success: false, Error: "no file body provided"})
	}

	a.to(StateRequestingCredential)
	g, err := a.client.requestCredential(ctx, a.in)
	if err != nil {
		// No credential means no reserved key; the same server would refuse a
		// proxied attempt for the same reason, so this is terminal.
		return a.finish(Outcome{Success: false, Error: err.Error()})
	}

	a.to(StateDirectUploading)
	directErr := a.client.uploadDirect(ctx, a.in, g, a.onProgress)
	if directErr == nil {
		return a.finish(Outcome{Success: true, URL: g.PublicURL})
	}

	if nextAfterDirectFailure(a.in.Size) != StateServerUploading {
		return a.finish(Outcome{Success: false, Error: directErr.Error()})
	}

	a.to(StateServerUploading)
	url, err := a.client.uploadViaServer(ctx, a.in, a.onProgress)
	if err != nil {
		return a.finish(Outcome{Success: false, Error: err.Error()})
	}
	return a.finish(Outcome{Success: true, URL: url})
}

// nextAfterDirectFailure encodes the escalation policy in isolation: exactly
// one proxied retry, and only for files the application server can carry.
func nextAfterDirectFailure(size int64) State {
	if size < ProxyLimitBytes {
		return StateServerUploading
	}
	return StateFailed
}

func (c *Client) requestCredential(ctx context.Context, in Input) (*grant, error) {
	payload, err := json.Marshal(map[string]any{
		"fileName": in.FileName,
		"fileType": in.ContentType,
		"fileSize": in.Size,
		"folder":   in.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("encode credential request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads/presign", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build credential request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request upload credential: %w", err)
	}
	defer resp.Body.Close()

	var g grant
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode credential response: %w", err)
	}
	if !g.Success {
		if g.Error != "" {
			return nil, fmt.Errorf("credential refused: %s", g.Error)
		}
		return nil, fmt.Errorf("credential refused: status %d", resp.StatusCode)
	}
	return &g, nil
}

// uploadDirect PUTs the file bytes straight to the presigned URL, echoing the
// pinned headers the signature covers. The store object exists only if this
// returns nil; a failed or abandoned PUT leaves the credential to expire unused.
func (c *Client) uploadDirect(ctx context.Context, in Input, g *grant, onProgress ProgressFunc) error {
	if _, err := in.Body.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind file: %w", err)
	}
	if onProgress != nil {
		onProgress(0)
	}

	pr := newProgressReader(in.Body, in.Size, onProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.PresignedURL, pr)
	if err != nil {
		return fmt.Errorf("build direct upload request: %w", err)
	}
	req.ContentLength = in.Size
	req.Header.Set("Content-Type", in.ContentType)
	for k, v := range g.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("direct upload failed: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("direct upload failed: storage returned status %d", resp.StatusCode)
	}

	pr.finish()
	return nil
}

// uploadViaServer streams the file as a multipart body through the application
// server. Progress is coarser here (multipart overhead is not accounted for)
// but still monotone and ends at 100 on success.
func (c *Client) uploadViaServer(ctx context.Context, in Input, onProgress ProgressFunc) (string, error) {
	if _, err := in.Body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind file: %w", err)
	}
	if onProgress != nil {
		onProgress(0)
	}

	pr := newProgressReader(in.Body, in.Size, onProgress)

	bodyR, bodyW := io.Pipe()
	mw := multipart.NewWriter(bodyW)

	go func() {
		err := writeMultipart(mw, in, pr)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		bodyW.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads", bodyR)
	if err != nil {
		return "", fmt.Errorf("build proxied upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxied upload failed: %v", err)
	}
	defer resp.Body.Close()

	var out serverResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode proxied upload response: %w", err)
	}
	if !out.Success {
		if out.Error != "" {
			return "", fmt.Errorf("proxied upload failed: %s", out.Error)
		}
		return "", fmt.Errorf("proxied upload failed: status %d", resp.StatusCode)
	}

	pr.finish()
	return out.URL, nil
}

func writeMultipart(mw *multipart.Writer, in Input, fileBody io.Reader) error {
	if err := mw.WriteField("folder", in.Folder); err != nil {
		return err
	}

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(in.FileName)))
	if in.ContentType != "" {
		hdr.Set("Content-Type", in.ContentType)
	}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, fileBody)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// Delete removes a stored object by its public URL. Already-deleted objects
// report success; callers treat failures as non-fatal to their own workflow.
func (c *Client) Delete(ctx context.Context, publicURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/uploads?url="+url.QueryEscape(publicURL), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	var out serverResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode delete response: %w", err)
	}
	if !out.Success {
		if out.Error != "" {
			return fmt.Errorf("delete failed: %s", out.Error)
		}
		return fmt.Errorf("delete failed: status %d", resp.StatusCode)
	}
	return nil
}
