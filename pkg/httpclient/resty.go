package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"golang-lwcharts/pkg/logger"
)

const userAgent = "golang-lwcharts/1.0"

type RestyClient struct {
	client *resty.Client
	log    *logger.Logger
}

// New returns a resty backed client. Requests failing at the transport level or with
// a 5xx status are retried twice.
func New(log *logger.Logger, baseURL string, timeout time.Duration, bearerToken string) HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	if bearerToken != "" {
		client.SetAuthToken(bearerToken)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RestyClient{client: client, log: log}
}

// GET request with optional query params
func (rc *RestyClient) Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.client.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}
	if queryParams != nil {
		req.SetQueryParams(queryParams)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(endpoint)
	return rc.response(ctx, "GET", endpoint, resp, err)
}

// POST request with body
func (rc *RestyClient) Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.client.R().
		SetContext(ctx).
		SetBody(body)
	if result != nil {
		req.SetResult(result)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Post(endpoint)
	return rc.response(ctx, "POST", endpoint, resp, err)
}

func (rc *RestyClient) response(ctx context.Context, method, endpoint string, resp *resty.Response, err error) (*BaseResponse, error) {
	if err != nil {
		rc.log.WarnContext(ctx, "http request failed",
			logger.StringField("method", method),
			logger.StringField("endpoint", endpoint),
			logger.ErrorField(err))
	}
	if resp == nil {
		return &BaseResponse{}, err
	}
	return &BaseResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, err
}
