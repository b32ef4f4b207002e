package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONWithLogLevelKey(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(&out)

	logger.WithField("accountID", "checking").Info("Handler.Test.Complete")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "info", line["loglevel"])
	assert.Equal(t, "Handler.Test.Complete", line["msg"])
	assert.Equal(t, "checking", line["accountID"])
	assert.Contains(t, line, "time")
}

func TestSetLevel(t *testing.T) {
	logger := SetupLogging()
	require.NoError(t, SetLevel(logger, "debug"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Error(t, SetLevel(logger, "chatty"))
}

func TestLogData(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	logData := NewLogData(logger)

	logData.AddData("count", 3)
	logData.AddTiming("loadMs")()
	logData.AddToExistingTiming("loadMs")()

	entry := logData.Log()
	assert.Equal(t, 3, entry.Data["count"])
	assert.IsType(t, int64(0), entry.Data["loadMs"])
}

func TestGetLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logger, _ := logtest.NewNullLogger()
	logData := NewLogData(logger)
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestLoggingWrapper(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	ok := LoggingWrapper("Status", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})
	ok(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, "Handler.Status.Complete", hook.LastEntry().Message)
	assert.Equal(t, "/status", hook.LastEntry().Data["path"])
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])

	failing := LoggingWrapper("Status", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		return errors.New("boom")
	})
	failing(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, "Handler.Status.Error", hook.LastEntry().Message)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLoggingWrapper_LogDataOnContext(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	var same bool
	h := LoggingWrapper("Status", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		same = GetLogData(req.Context()) == logData
		return nil
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.True(t, same)
}

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"hasLogData"`
	}
}

func TestHumaMiddleware(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	_, api := humatest.New(t)
	api.UseMiddleware(HumaMiddleware(logger))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, input *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		logData := GetLogData(ctx)
		out.Body.HasLogData = logData != nil
		if logData != nil {
			logData.AddData("pinged", true)
		}
		return out, nil
	})

	resp := api.Get("/ping")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"hasLogData":true`)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Handler.ping.Complete", entry.Message)
	assert.Equal(t, true, entry.Data["pinged"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}
