package odata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// maxPages bounds how many @odata.nextLink hops a single List follows.
const maxPages = 50

type odataClient struct {
	BaseUrl    string
	Instance   string
	Company    string
	Username   string
	Password   string
	HTTPClient *http.Client
	Log        *zap.Logger
}

type collectionResponse struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"@odata.nextLink"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewODataClient(backend config.AppBackend, httpClient *http.Client, logger *zap.Logger) contracts.ODataClient {
	return &odataClient{
		BaseUrl:    backend.ODataBaseUrl,
		Instance:   backend.Instance,
		Company:    backend.Company,
		Username:   backend.Username,
		Password:   backend.Password,
		HTTPClient: httpClient,
		Log:        logger,
	}
}

func (c *odataClient) entitySetURL(entitySet string, query url.Values) string {
	// The company lives inside a quoted key segment, so it is path-escaped by hand.
	company := url.PathEscape(c.Company)
	endpoint := fmt.Sprintf(constvars.ODataEntitySetURLFormat, c.BaseUrl, c.Instance, company, entitySet)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// List follows @odata.nextLink until the collection is exhausted and decodes
// every row into out.
func (c *odataClient) List(ctx context.Context, entitySet string, query url.Values, out interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("odataClient.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntitySetKey, entitySet),
	)

	rows := make([]json.RawMessage, 0)
	endpoint := c.entitySetURL(entitySet, query)
	for page := 0; endpoint != "" && page < maxPages; page++ {
		collection, err := c.fetchPage(ctx, entitySet, endpoint)
		if err != nil {
			c.Log.Error("odataClient.List error fetching page",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEntitySetKey, entitySet),
				zap.Error(err),
			)
			return err
		}
		rows = append(rows, collection.Value...)
		endpoint = collection.NextLink
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.Log.Error("odataClient.List error decoding rows",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntitySetKey, entitySet),
			zap.Error(err),
		)
		return exceptions.ErrODataDecode(err, entitySet)
	}

	c.Log.Info("odataClient.List succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntitySetKey, entitySet),
		zap.Int(constvars.LoggingResponseLengthKey, len(rows)),
	)
	return nil
}

func (c *odataClient) fetchPage(ctx context.Context, entitySet, endpoint string) (*collectionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrODataFetch(err, entitySet)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrReadBody(err)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		var outcome errorResponse
		message := http.StatusText(resp.StatusCode)
		if json.Unmarshal(body, &outcome) == nil && outcome.Error.Message != "" {
			message = outcome.Error.Message
		}
		return nil, exceptions.ErrODataFetch(fmt.Errorf("status %d: %s", resp.StatusCode, message), entitySet)
	}

	collection := new(collectionResponse)
	if err := json.Unmarshal(body, collection); err != nil {
		return nil, exceptions.ErrODataDecode(err, entitySet)
	}
	return collection, nil
}
