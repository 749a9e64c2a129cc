package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/glue-gateway/internal/catalog"
	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/envelope"
	"github.com/tbourn/glue-gateway/internal/repo"
	"github.com/tbourn/glue-gateway/internal/services"
)

// ---------- stubs ----------

// stubGateway records what it was asked and answers from outcomes, falling
// back to a bare 200 transport result.
type stubGateway struct {
	outcomes map[envelope.Operation]envelope.Outcome

	calls   []envelope.Operation
	crawler catalog.CrawlerInput
	conn    domain.Connection
	name    string
}

func (s *stubGateway) result(op envelope.Operation) envelope.Outcome {
	s.calls = append(s.calls, op)
	if o, ok := s.outcomes[op]; ok {
		return o
	}
	return envelope.Transport(http.StatusOK, nil, nil)
}

func (s *stubGateway) CreateCrawler(_ context.Context, in catalog.CrawlerInput) envelope.Outcome {
	s.crawler = in
	return s.result(envelope.OpCreateCrawler)
}

func (s *stubGateway) UpdateCrawler(_ context.Context, in catalog.CrawlerInput) envelope.Outcome {
	s.crawler = in
	return s.result(envelope.OpUpdateCrawler)
}

func (s *stubGateway) GetCrawler(_ context.Context, name string) envelope.Outcome {
	s.name = name
	return s.result(envelope.OpGetCrawler)
}

func (s *stubGateway) GetCrawlers(context.Context) envelope.Outcome {
	return s.result(envelope.OpGetCrawlers)
}

func (s *stubGateway) ListCrawlers(context.Context) envelope.Outcome {
	return s.result(envelope.OpListCrawlers)
}

func (s *stubGateway) StartCrawler(_ context.Context, name string) envelope.Outcome {
	s.name = name
	return s.result(envelope.OpStartCrawler)
}

func (s *stubGateway) StopCrawler(_ context.Context, name string) envelope.Outcome {
	s.name = name
	return s.result(envelope.OpStopCrawler)
}

func (s *stubGateway) CreateConnection(_ context.Context, c domain.Connection) envelope.Outcome {
	s.conn = c
	return s.result(envelope.OpCreateConnection)
}

func (s *stubGateway) UpdateConnection(_ context.Context, c domain.Connection) envelope.Outcome {
	s.conn = c
	return s.result(envelope.OpUpdateConnection)
}

func (s *stubGateway) GetConnection(_ context.Context, name string) envelope.Outcome {
	s.name = name
	return s.result(envelope.OpGetConnection)
}

func (s *stubGateway) GetConnections(context.Context) envelope.Outcome {
	return s.result(envelope.OpGetConnections)
}

func (s *stubGateway) DeleteConnection(_ context.Context, name string) envelope.Outcome {
	s.name = name
	return s.result(envelope.OpDeleteConnection)
}

type stubAudit struct {
	recorded  []services.Call
	recordErr error

	listPage func(context.Context, string, int, int) ([]domain.CallRecord, int64, error)
	stats    func(context.Context, string) (int64, *time.Time, error)
}

func (s *stubAudit) Record(_ context.Context, call services.Call) error {
	s.recorded = append(s.recorded, call)
	return s.recordErr
}

func (s *stubAudit) ListPage(ctx context.Context, op string, page, pageSize int) ([]domain.CallRecord, int64, error) {
	if s.listPage != nil {
		return s.listPage(ctx, op, page, pageSize)
	}
	return []domain.CallRecord{}, 0, nil
}

func (s *stubAudit) Stats(ctx context.Context, op string) (int64, *time.Time, error) {
	if s.stats != nil {
		return s.stats(ctx, op)
	}
	return 0, nil, nil
}

// ---------- helpers ----------

func newGatewayRouter(h *Handlers, logBuf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-1")
		if logBuf != nil {
			lg := zerolog.New(logBuf)
			c.Set("logger", &lg)
		}
		c.Next()
	})

	r.POST("/crawlers/s3", h.CreateS3Crawler)
	r.POST("/crawlers/jdbc", h.CreateJdbcCrawler)
	r.POST("/crawlers/catalog", h.CreateCatalogCrawler)
	r.POST("/crawlers/delta", h.CreateDeltaCrawler)
	r.PUT("/crawlers/s3", h.UpdateS3Crawler)
	r.PUT("/crawlers/jdbc", h.UpdateJdbcCrawler)
	r.PUT("/crawlers/catalog", h.UpdateCatalogCrawler)
	r.PUT("/crawlers/delta", h.UpdateDeltaCrawler)
	r.GET("/crawlers", h.GetCrawlers)
	r.GET("/crawlers/names", h.ListCrawlers)
	r.GET("/crawlers/:name", h.GetCrawler)
	r.POST("/crawlers/:name", h.GetCrawler)
	r.POST("/crawlers/:name/start", h.StartCrawler)
	r.POST("/crawlers/:name/stop", h.StopCrawler)

	r.POST("/connections", h.CreateConnection)
	r.PUT("/connections", h.UpdateConnection)
	r.GET("/connections", h.GetConnections)
	r.GET("/connections/:name", h.GetConnection)
	r.DELETE("/connections/:name", h.DeleteConnection)

	r.GET("/audit/calls", h.ListCalls)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	return m
}

const s3Body = `{"Name":"orders-raw","Role":"arn:aws:iam::1:role/Glue","DatabaseName":"analytics","S3Path":"s3://bucket/orders/"}`

func alreadyExists() envelope.Outcome {
	return envelope.Classified(envelope.CodeAlreadyExists, http.StatusBadRequest, catalog.ErrorDetail{
		Code:    envelope.CodeAlreadyExists,
		Message: "Crawler with name orders-raw already exists",
	})
}

// ---------- envelope scenarios ----------

func TestCreateS3Crawler_Success(t *testing.T) {
	gw := &stubGateway{}
	r := newGatewayRouter(New(gw, nil, true), nil)

	w := do(r, http.MethodPost, "/crawlers/s3", s3Body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"success":true,"status":200,"data":null}` {
		t.Fatalf("body = %s", got)
	}
	if gw.crawler.Name != "orders-raw" || gw.crawler.DatabaseName != "analytics" {
		t.Fatalf("unexpected crawler input: %+v", gw.crawler)
	}
	if len(gw.crawler.Targets.S3Targets) != 1 || aws.ToString(gw.crawler.Targets.S3Targets[0].Path) != "s3://bucket/orders/" {
		t.Fatalf("unexpected S3 targets: %+v", gw.crawler.Targets)
	}
}

func TestCreateS3Crawler_AlreadyExists_ExceptionWithDetail(t *testing.T) {
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpCreateCrawler: alreadyExists(),
	}}
	r := newGatewayRouter(New(gw, nil, true), nil)

	w := do(r, http.MethodPost, "/crawlers/s3", s3Body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("mirrored status=%d", w.Code)
	}
	m := decodeMap(t, w)
	if m["success"] != false || m["status"].(float64) != 400 {
		t.Fatalf("unexpected envelope: %v", m)
	}
	msg := m["message"].(map[string]any)
	if msg["Code"] != "AlreadyExistsException" || msg["Message"] != "Crawler with name orders-raw already exists" {
		t.Fatalf("unexpected detail: %v", msg)
	}
}

func TestCreateCrawler_NonOKTransport_ErrorEnvelope(t *testing.T) {
	raw := map[string]any{"ResultMetadata": map[string]any{}}
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpCreateCrawler: envelope.Transport(http.StatusAccepted, nil, raw),
	}}
	r := newGatewayRouter(New(gw, nil, true), nil)

	w := do(r, http.MethodPost, "/crawlers/s3", s3Body)
	m := decodeMap(t, w)
	if w.Code != http.StatusAccepted || m["success"] != false || m["status"].(float64) != 202 {
		t.Fatalf("unexpected: %d %v", w.Code, m)
	}
	if _, ok := m["message"].(map[string]any)["ResultMetadata"]; !ok {
		t.Fatalf("raw result missing from message: %v", m)
	}
}

func TestStopCrawler_NotRunning_ExceptionWithDetail(t *testing.T) {
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpStopCrawler: envelope.Classified(envelope.CodeCrawlerNotRunning, http.StatusBadRequest, catalog.ErrorDetail{
			Code:    envelope.CodeCrawlerNotRunning,
			Message: "Crawler with name orders-raw is not running",
		}),
	}}
	r := newGatewayRouter(New(gw, nil, true), nil)

	w := do(r, http.MethodPost, "/crawlers/orders-raw/stop", "")
	m := decodeMap(t, w)
	if gw.name != "orders-raw" || m["status"].(float64) != 400 {
		t.Fatalf("unexpected: name=%q env=%v", gw.name, m)
	}
	if m["message"].(map[string]any)["Code"] != "CrawlerNotRunningException" {
		t.Fatalf("unexpected detail: %v", m["message"])
	}
}

func TestStopCrawler_UnrecognisedCode_DefaultException(t *testing.T) {
	var logBuf bytes.Buffer
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpStopCrawler: alreadyExists(),
	}}
	r := newGatewayRouter(New(gw, nil, true), &logBuf)

	w := do(r, http.MethodPost, "/crawlers/orders-raw/stop", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	want := `{"success":false,"status":404,"message":{"message":"Unhandled Exception"}}`
	if got := strings.TrimSpace(w.Body.String()); got != want {
		t.Fatalf("body = %s", got)
	}
	if !strings.Contains(logBuf.String(), `"error_code":"AlreadyExistsException"`) {
		t.Fatalf("expected warning log with error code, got %s", logBuf.String())
	}
}

func TestStartCrawler_SuccessMessage(t *testing.T) {
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpStartCrawler: envelope.Transport(http.StatusOK, map[string]string{"message": catalog.MsgCrawlerStarted}, nil),
	}}
	r := newGatewayRouter(New(gw, nil, true), nil)

	w := do(r, http.MethodPost, "/crawlers/orders-raw/start", "")
	m := decodeMap(t, w)
	if m["data"].(map[string]any)["message"] != "Crawler started successfully" {
		t.Fatalf("unexpected envelope: %v", m)
	}
}

func TestGetConnections_DataIsInnerList(t *testing.T) {
	list := []types.Connection{{Name: aws.String("pg-prod")}, {Name: aws.String("mysql-dev")}}
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpGetConnections: envelope.Transport(http.StatusOK, list, nil),
	}}
	r := newGatewayRouter(New(gw, nil, true), nil)

	w := do(r, http.MethodGet, "/connections", "")
	m := decodeMap(t, w)
	data, ok := m["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("data must be the connection list: %v", m)
	}
	if data[0].(map[string]any)["Name"] != "pg-prod" {
		t.Fatalf("unexpected first connection: %v", data[0])
	}
}

func TestUnclassified_LoggedAndDefaultException(t *testing.T) {
	var logBuf bytes.Buffer
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpGetCrawlers: envelope.Unclassified(errors.New("dial tcp 10.0.0.1:443: i/o timeout")),
	}}
	r := newGatewayRouter(New(gw, nil, true), &logBuf)

	w := do(r, http.MethodGet, "/crawlers", "")
	m := decodeMap(t, w)
	if m["status"].(float64) != 404 || m["message"].(map[string]any)["message"] != "Unhandled Exception" {
		t.Fatalf("unexpected envelope: %v", m)
	}
	if strings.Contains(w.Body.String(), "dial tcp") {
		t.Fatalf("cause leaked to caller: %s", w.Body.String())
	}
	logs := logBuf.String()
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, "dial tcp") {
		t.Fatalf("expected error log with cause, got %s", logs)
	}
}

func TestMirrorStatusOff_AlwaysOK(t *testing.T) {
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpCreateCrawler: alreadyExists(),
	}}
	r := newGatewayRouter(New(gw, nil, false), nil)

	w := do(r, http.MethodPost, "/crawlers/s3", s3Body)
	m := decodeMap(t, w)
	if w.Code != http.StatusOK || m["status"].(float64) != 400 {
		t.Fatalf("want outer 200 with nested 400, got %d %v", w.Code, m)
	}
}

// ---------- input handling ----------

func TestCreateCrawler_ValidationRejectedBeforeGlue(t *testing.T) {
	gw := &stubGateway{}
	r := newGatewayRouter(New(gw, nil, true), nil)

	cases := []struct {
		name, path, body, code string
	}{
		{"missing S3Path", "/crawlers/s3", `{"Name":"a","Role":"r","DatabaseName":"d"}`, ErrCodeValidation},
		{"missing Role jdbc", "/crawlers/jdbc", `{"Name":"a","DatabaseName":"d","ConnectionName":"c","Path":"p"}`, ErrCodeValidation},
		{"bad behavior", "/crawlers/catalog", `{"Name":"a","Role":"r","DatabaseName":"d","Tables":"t","UpdateBehavior":"DROP"}`, ErrCodeValidation},
		{"malformed JSON", "/crawlers/delta", `{"Name":`, ErrCodeBadRequest},
		{"blank name", "/crawlers/s3", `{"Name":"   ","Role":"r","DatabaseName":"d","S3Path":"s3://b/"}`, ErrCodeInvalidName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			var er ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
				t.Fatalf("json: %v", err)
			}
			if er.Code != tc.code || er.RequestID != "rid-1" {
				t.Fatalf("unexpected error response: %+v", er)
			}
		})
	}
	if len(gw.calls) != 0 {
		t.Fatalf("gateway must not be called, got %v", gw.calls)
	}
}

func TestCatalogCrawler_DefaultsAndNoTopLevelDatabase(t *testing.T) {
	gw := &stubGateway{}
	r := newGatewayRouter(New(gw, nil, true), nil)

	body := `{"Name":"orders-cat","Role":"r","DatabaseName":"analytics","Tables":"orders"}`
	if w := do(r, http.MethodPut, "/crawlers/catalog", body); w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if gw.calls[0] != envelope.OpUpdateCrawler {
		t.Fatalf("expected UpdateCrawler, got %v", gw.calls)
	}
	if gw.crawler.DatabaseName != "" || gw.crawler.Policy == nil {
		t.Fatalf("unexpected catalog input: %+v", gw.crawler)
	}
	if gw.crawler.Policy.UpdateBehavior != types.UpdateBehaviorLog || gw.crawler.Policy.DeleteBehavior != types.DeleteBehaviorLog {
		t.Fatalf("behaviors must default to LOG: %+v", gw.crawler.Policy)
	}
}

func TestCrawlerVariants_RouteToRightTargets(t *testing.T) {
	gw := &stubGateway{}
	r := newGatewayRouter(New(gw, nil, true), nil)

	do(r, http.MethodPost, "/crawlers/jdbc", `{"Name":"j","Role":"r","DatabaseName":"d","ConnectionName":"pg","Path":"sales/%"}`)
	if len(gw.crawler.Targets.JdbcTargets) != 1 || aws.ToString(gw.crawler.Targets.JdbcTargets[0].ConnectionName) != "pg" {
		t.Fatalf("jdbc targets: %+v", gw.crawler.Targets)
	}
	do(r, http.MethodPut, "/crawlers/delta", `{"Name":"d","Role":"r","DatabaseName":"d","DeltaTables":"s3://b/delta/"}`)
	if len(gw.crawler.Targets.DeltaTargets) != 1 || gw.crawler.Targets.DeltaTargets[0].DeltaTables[0] != "s3://b/delta/" {
		t.Fatalf("delta targets: %+v", gw.crawler.Targets)
	}
	do(r, http.MethodPut, "/crawlers/s3", s3Body)
	do(r, http.MethodPost, "/crawlers/catalog", `{"Name":"c","Role":"r","DatabaseName":"d","Tables":"t"}`)

	want := []envelope.Operation{envelope.OpCreateCrawler, envelope.OpUpdateCrawler, envelope.OpUpdateCrawler, envelope.OpCreateCrawler}
	if fmt.Sprint(gw.calls) != fmt.Sprint(want) {
		t.Fatalf("calls = %v; want %v", gw.calls, want)
	}
}

func TestPathNames_TrimmedNFCAndRejectedWhenBlank(t *testing.T) {
	gw := &stubGateway{}
	r := newGatewayRouter(New(gw, nil, true), nil)

	// "cafe" + combining acute accent (NFD) must reach Glue as NFC.
	if w := do(r, http.MethodGet, "/crawlers/cafe%CC%81", ""); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if gw.name != "café" {
		t.Fatalf("name not NFC-normalised: %q", gw.name)
	}

	if w := do(r, http.MethodPost, "/crawlers/%20orders%20", ""); w.Code != http.StatusOK || gw.name != "orders" {
		t.Fatalf("POST lookup: %d name=%q", w.Code, gw.name)
	}

	before := len(gw.calls)
	w := do(r, http.MethodPost, "/crawlers/%20/start", "")
	if w.Code != http.StatusBadRequest || len(gw.calls) != before {
		t.Fatalf("blank name must be rejected before Glue: %d", w.Code)
	}
	w = do(r, http.MethodDelete, "/connections/%20%20", "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "connection name is required") {
		t.Fatalf("blank connection name: %d %s", w.Code, w.Body.String())
	}
}

func TestConnections_CreateUpdateGetDelete(t *testing.T) {
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpDeleteConnection: envelope.Classified(envelope.CodeEntityNotFound, http.StatusBadRequest, catalog.ErrorDetail{Code: envelope.CodeEntityNotFound}),
	}}
	r := newGatewayRouter(New(gw, nil, true), nil)

	body := `{"Name":"pg-prod","ConnectionType":"JDBC","JDBC_CONNECTION_URL":"jdbc:postgresql://db:5432/sales","USERNAME":"glue","PASSWORD":"secret"}`
	if w := do(r, http.MethodPost, "/connections", body); w.Code != http.StatusOK {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if gw.conn.Name != "pg-prod" || gw.conn.JDBCConnectionURL != "jdbc:postgresql://db:5432/sales" || gw.conn.Password != "secret" {
		t.Fatalf("unexpected connection: %+v", gw.conn)
	}

	if w := do(r, http.MethodPut, "/connections", strings.Replace(body, "glue", "glue2", 1)); w.Code != http.StatusOK {
		t.Fatalf("update status=%d", w.Code)
	}
	if gw.conn.Username != "glue2" {
		t.Fatalf("update must forward the body record: %+v", gw.conn)
	}

	if w := do(r, http.MethodPost, "/connections", `{"Name":"x","ConnectionType":"JDBC"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing properties must fail validation, got %d", w.Code)
	}

	do(r, http.MethodGet, "/connections/pg-prod", "")
	if gw.name != "pg-prod" {
		t.Fatalf("get name = %q", gw.name)
	}

	w := do(r, http.MethodDelete, "/connections/pg-prod", "")
	m := decodeMap(t, w)
	if w.Code != http.StatusBadRequest || m["message"].(map[string]any)["Code"] != "EntityNotFoundException" {
		t.Fatalf("delete: %d %v", w.Code, m)
	}
}

// ---------- audit ----------

func TestForward_RecordsAuditAndSurvivesAuditFailure(t *testing.T) {
	var logBuf bytes.Buffer
	audit := &stubAudit{recordErr: errors.New("database is locked")}
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpListCrawlers: envelope.Transport(http.StatusOK, []string{"a", "b"}, nil),
	}}
	r := newGatewayRouter(New(gw, audit, true), &logBuf)

	w := do(r, http.MethodGet, "/crawlers/names", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"success":true,"status":200,"data":["a","b"]}` {
		t.Fatalf("audit failure leaked into response: %d %s", w.Code, w.Body.String())
	}
	if len(audit.recorded) != 1 {
		t.Fatalf("expected one audit record, got %d", len(audit.recorded))
	}
	call := audit.recorded[0]
	if call.RequestID != "rid-1" || call.Operation != envelope.OpListCrawlers || call.Envelope.Variant != envelope.VariantSuccess {
		t.Fatalf("unexpected audit call: %+v", call)
	}
	if !strings.Contains(logBuf.String(), "audit record failed") {
		t.Fatalf("expected audit failure log, got %s", logBuf.String())
	}
}

func TestListCalls_DisabledAndErrors(t *testing.T) {
	r := newGatewayRouter(New(&stubGateway{}, nil, true), nil)
	w := do(r, http.MethodGet, "/audit/calls", "")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), ErrCodeAuditDisabled) {
		t.Fatalf("nil audit: %d %s", w.Code, w.Body.String())
	}

	audit := &stubAudit{}
	r = newGatewayRouter(New(&stubGateway{}, audit, true), nil)

	audit.listPage = func(context.Context, string, int, int) ([]domain.CallRecord, int64, error) {
		return nil, 0, services.ErrAuditDisabled
	}
	if w := do(r, http.MethodGet, "/audit/calls", ""); w.Code != http.StatusNotFound {
		t.Fatalf("disabled service: %d", w.Code)
	}

	audit.listPage = func(context.Context, string, int, int) ([]domain.CallRecord, int64, error) {
		return nil, 0, services.ErrUnknownOperation
	}
	if w := do(r, http.MethodGet, "/audit/calls?operation=DropTable", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown op: %d", w.Code)
	}

	audit.listPage = func(context.Context, string, int, int) ([]domain.CallRecord, int64, error) {
		return nil, 0, errors.New("boom")
	}
	if w := do(r, http.MethodGet, "/audit/calls", ""); w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), ErrCodeListFailed) {
		t.Fatalf("repo error: %d %s", w.Code, w.Body.String())
	}
}

func TestListCalls_PaginationClamped(t *testing.T) {
	var gotOp string
	var gotPage, gotSize int
	audit := &stubAudit{listPage: func(_ context.Context, op string, page, size int) ([]domain.CallRecord, int64, error) {
		gotOp, gotPage, gotSize = op, page, size
		return []domain.CallRecord{{ID: "1"}}, 250, nil
	}}
	r := newGatewayRouter(New(&stubGateway{}, audit, true), nil)

	w := do(r, http.MethodGet, "/audit/calls?operation=StopCrawler&page=0&page_size=1000", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if gotOp != "StopCrawler" || gotPage != 1 || gotSize != 100 {
		t.Fatalf("clamp: op=%q page=%d size=%d", gotOp, gotPage, gotSize)
	}
	var resp ListCallsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Pagination.TotalPages != 3 || !resp.Pagination.HasNext || len(resp.Calls) != 1 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
}

// ---------- end-to-end with the real audit service ----------

type testCallRepo struct{}

func (testCallRepo) InsertCall(ctx context.Context, db *gorm.DB, rec *domain.CallRecord) error {
	return repo.InsertCall(ctx, db, rec)
}

func (testCallRepo) CountCalls(ctx context.Context, db *gorm.DB, op string) (int64, error) {
	return repo.CountCalls(ctx, db, op)
}

func (testCallRepo) ListCallsPage(ctx context.Context, db *gorm.DB, op string, offset, limit int) ([]domain.CallRecord, error) {
	return repo.ListCallsPage(ctx, db, op, offset, limit)
}

func (testCallRepo) CallStats(ctx context.Context, db *gorm.DB, op string) (int64, *time.Time, error) {
	return repo.CallStats(ctx, db, op)
}

func newAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:audit_handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAuditTrail_EndToEnd(t *testing.T) {
	svc := services.NewAuditService(newAuditDB(t), testCallRepo{})
	gw := &stubGateway{outcomes: map[envelope.Operation]envelope.Outcome{
		envelope.OpStopCrawler: envelope.Unclassified(errors.New("context canceled")),
	}}
	r := newGatewayRouter(New(gw, svc, true), nil)

	do(r, http.MethodPost, "/crawlers/orders-raw/start", "")
	do(r, http.MethodPost, "/crawlers/orders-raw/stop", "")

	w := do(r, http.MethodGet, "/audit/calls", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp ListCallsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Pagination.Total != 2 {
		t.Fatalf("total = %d; want 2", resp.Pagination.Total)
	}

	w = do(r, http.MethodGet, "/audit/calls?operation=StopCrawler", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Calls) != 1 {
		t.Fatalf("filtered calls = %d", len(resp.Calls))
	}
	got := resp.Calls[0]
	if got.Variant != "exception" || got.Status != 404 || got.Cause != "context canceled" || got.Resource != "orders-raw" || got.RequestID != "rid-1" {
		t.Fatalf("unexpected audit row: %+v", got)
	}
}

func TestListCalls_ETag_NotModified(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	listed := 0
	audit := &stubAudit{
		stats: func(context.Context, string) (int64, *time.Time, error) { return 3, &ts, nil },
		listPage: func(context.Context, string, int, int) ([]domain.CallRecord, int64, error) {
			listed++
			return []domain.CallRecord{{ID: "1"}}, 3, nil
		},
	}
	r := newGatewayRouter(New(&stubGateway{}, audit, true), nil)

	w := do(r, http.MethodGet, "/audit/calls?operation=StopCrawler", "")
	etag := w.Header().Get("ETag")
	if w.Code != http.StatusOK || !strings.HasPrefix(etag, `W/"calls:StopCrawler:3:`) {
		t.Fatalf("first request: %d etag=%q", w.Code, etag)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "private, no-cache" {
		t.Fatalf("Cache-Control = %q", cc)
	}

	req := httptest.NewRequest(http.MethodGet, "/audit/calls?operation=StopCrawler", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified || w.Body.Len() != 0 {
		t.Fatalf("expected 304 with empty body, got %d %q", w.Code, w.Body.String())
	}
	if listed != 1 {
		t.Fatalf("304 must skip the page query, listed=%d", listed)
	}

	// A different page is a different representation.
	req = httptest.NewRequest(http.MethodGet, "/audit/calls?operation=StopCrawler&page=2", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other page must not match the etag, got %d", w.Code)
	}
}
