package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// Fault is a SOAP 1.1 fault returned by the codeunit.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

func (f *Fault) Error() string {
	if f.Code == "" {
		return f.String
	}
	return fmt.Sprintf("%s: %s", f.Code, f.String)
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	Fault  *Fault         `xml:"Fault"`
	Result actionResponse `xml:",any"`
}

type actionResponse struct {
	XMLName     xml.Name
	ReturnValue string `xml:"return_value"`
}

type soapClient struct {
	Endpoint   string
	Namespace  string
	Username   string
	Password   string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewSOAPClient(backend config.AppBackend, httpClient *http.Client, logger *zap.Logger) contracts.SOAPClient {
	return &soapClient{
		Endpoint: fmt.Sprintf(constvars.SOAPCodeunitURLFormat,
			backend.SOAPBaseUrl,
			backend.Instance,
			url.PathEscape(backend.Company),
			backend.Codeunit,
		),
		Namespace:  fmt.Sprintf(constvars.SOAPCodeunitNamespaceFormat, backend.Codeunit),
		Username:   backend.Username,
		Password:   backend.Password,
		HTTPClient: httpClient,
		Log:        logger,
	}
}

// Call wraps request in an envelope whose body element is named after action
// in the codeunit namespace. request fields are marshaled as its children.
func (c *soapClient) Call(ctx context.Context, action string, request interface{}) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("soapClient.Call called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSOAPActionKey, action),
	)

	payload, err := c.buildEnvelope(action, request)
	if err != nil {
		c.Log.Error("soapClient.Call error building envelope",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrCannotMarshalXML(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMETextXMLCharsetUTF8)
	req.Header.Set(constvars.HeaderSOAPAction, action)
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("soapClient.Call error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSOAPActionKey, action),
			zap.Error(err),
		)
		return "", exceptions.ErrSOAPCall(err, action)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", exceptions.ErrReadBody(err)
	}

	// Faults usually come back with status 500, so the body is inspected first.
	var envelope responseEnvelope
	decodeErr := xml.Unmarshal(body, &envelope)
	if decodeErr == nil && envelope.Body.Fault != nil {
		fault := envelope.Body.Fault
		c.Log.Error("soapClient.Call fault",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSOAPActionKey, action),
			zap.Error(fault),
		)
		return "", exceptions.ErrSOAPFault(fault, action)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(http.StatusText(resp.StatusCode)))
		c.Log.Error("soapClient.Call unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSOAPActionKey, action),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return "", exceptions.ErrSOAPCall(statusErr, action)
	}

	if decodeErr != nil {
		c.Log.Error("soapClient.Call error decoding envelope",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSOAPActionKey, action),
			zap.Error(decodeErr),
		)
		return "", exceptions.ErrSOAPDecode(decodeErr, action)
	}

	c.Log.Info("soapClient.Call succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSOAPActionKey, action),
		zap.Int(constvars.LoggingResponseLengthKey, len(envelope.Body.Result.ReturnValue)),
	)
	return envelope.Body.Result.ReturnValue, nil
}

func (c *soapClient) buildEnvelope(action string, request interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	envelope := xml.StartElement{Name: xml.Name{Space: constvars.SOAPEnvelopeNamespace, Local: "Envelope"}}
	body := xml.StartElement{Name: xml.Name{Local: "Body"}}

	if err := enc.EncodeToken(envelope); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(body); err != nil {
		return nil, err
	}
	if err := enc.EncodeElement(request, xml.StartElement{Name: xml.Name{Space: c.Namespace, Local: action}}); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(body.End()); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(envelope.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
