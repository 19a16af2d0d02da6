package repositories

import (
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"weather-lookup/pkg/logger"
)

const defaultBreakerTimeout = 30 * time.Second

var errServerStatus = errors.New("server error status")

// callerGoneError marks a request abandoned by its caller. It says nothing
// about provider health, so the breaker does not count it as a failure.
type callerGoneError struct {
	err error
}

func (e *callerGoneError) Error() string { return e.err.Error() }

func (e *callerGoneError) Unwrap() error { return e.err }

func isSuccessful(err error) bool {
	var gone *callerGoneError
	return err == nil || errors.As(err, &gone)
}

// breakerClient fails fast while an endpoint keeps failing. It never retries:
// each Do is at most one outbound request.
type breakerClient struct {
	next HTTPClient
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

// tripAfterFailures trips when at least 5 requests were seen and half of them failed.
func tripAfterFailures(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

func newBreakerClient(name string, next HTTPClient, openTimeout time.Duration, l *logger.Logger) *breakerClient {
	if openTimeout <= 0 {
		openTimeout = defaultBreakerTimeout
	}

	return &breakerClient{
		next: next,
		cb: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:         name,
			MaxRequests:  1,
			Timeout:      openTimeout,
			ReadyToTrip:  tripAfterFailures,
			IsSuccessful: isSuccessful,
			OnStateChange: func(name string, from, to gobreaker.State) {
				if l != nil {
					l.Warning("provider circuit breaker state changed", map[string]any{
						"breaker": name,
						"from":    from.String(),
						"to":      to.String(),
					})
				}
			},
		}),
	}
}

// Do counts transport errors and 5xx responses as failures. 5xx responses are
// still handed back so the caller can report the status. Requests whose own
// context ended are not counted.
func (b *breakerClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := b.cb.Execute(func() (*http.Response, error) {
		resp, err := b.next.Do(req)
		if err != nil {
			if req.Context().Err() != nil {
				return nil, &callerGoneError{err: err}
			}
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if errors.Is(err, errServerStatus) {
		return resp, nil
	}
	var gone *callerGoneError
	if errors.As(err, &gone) {
		return nil, gone.err
	}
	return resp, err
}

func (b *breakerClient) State() gobreaker.State {
	return b.cb.State()
}
