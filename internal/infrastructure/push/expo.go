package push

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/workaholic/backend/domain"
)

// DefaultExpoEndpoint is the Expo push gateway.
const DefaultExpoEndpoint = "https://exp.host/--/api/v2/push/send"

// ExpoSender is the relay adapter: one HTTP POST per message to the Expo
// gateway. It does not inspect per-message tickets or receipts; a delivered
// HTTP response with a 2xx status counts as success.
type ExpoSender struct {
	endpoint string
	client   *fasthttp.Client
	timeout  time.Duration
}

type expoMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

func NewExpoSender(endpoint string, timeout time.Duration) *ExpoSender {
	if endpoint == "" {
		endpoint = DefaultExpoEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ExpoSender{
		endpoint: endpoint,
		client:   &fasthttp.Client{},
		timeout:  timeout,
	}
}

// IsExpoToken checks the registered token shape. The check runs before any
// network call so a malformed address is a cheap no-op rejection.
func IsExpoToken(token string) bool {
	if !strings.HasSuffix(token, "]") {
		return false
	}
	return strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")
}

func (s *ExpoSender) Send(ctx context.Context, token, title, body string) error {
	if !IsExpoToken(token) {
		return domain.ErrInvalidPushToken
	}

	payload, err := json.Marshal(expoMessage{
		To:    token,
		Sound: "default",
		Title: title,
		Body:  body,
		Data:  map[string]string{},
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "expo payload marshal failed", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	if timeout <= 0 {
		return domain.WrapError(domain.ErrCodeInternal, "expo send aborted", ctx.Err())
	}

	if err := s.client.DoTimeout(req, resp, timeout); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "expo send failed", err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return domain.NewError(domain.ErrCodeInternal, "expo gateway returned "+fasthttp.StatusMessage(status))
	}
	return nil
}
