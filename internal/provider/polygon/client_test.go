package polygon_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stockfeed/internal/provider/polygon"
)

// respond builds a canned upstream response.
func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	// Assert: a key is required.
	client, err := polygon.New("  ")
	require.Error(t, err)
	require.Nil(t, client)

	// Assert: a valid key returns a client.
	client, err = polygon.New("test")
	require.NoError(t, err)
	require.NotNil(t, client)

	// Assert: a malformed base URL is rejected.
	_, err = polygon.New("test", polygon.WithBaseURL("not a url"))
	require.Error(t, err)
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock http client
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	baseURL := "http://localhost:8080"

	// Assert: the request goes to the overridden host
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL+"/v3/"), "expected url to start with base url, received: %s", req.URL.String())
			return respond(http.StatusOK, `{"status":"OK","results":[]}`), nil
		}).
		Times(1)

	// Arrange: trailing slashes are trimmed.
	client, err := polygon.New("test", polygon.WithHTTPClient(httpClient), polygon.WithBaseURL(baseURL+"/"))
	require.NoError(t, err)

	// Act
	_, err = client.SearchTickers(t.Context(), "apple")
	require.NoError(t, err)
}

func TestWithAuthMode_Bearer(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the key moves from the query string to the header.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Empty(t, req.URL.Query().Get("apiKey"))
			require.Equal(t, "Bearer k3y", req.Header.Get("Authorization"))
			return respond(http.StatusOK, `{"results":[]}`), nil
		}).
		Times(1)

	client, err := polygon.New("k3y", polygon.WithHTTPClient(httpClient), polygon.WithAuthMode(polygon.AuthBearer))
	require.NoError(t, err)

	// Act
	_, ok := client.PreviousClose(t.Context(), "AAPL")
	require.False(t, ok)
}
