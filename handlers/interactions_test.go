package handlers

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"botbackend/clients/natsqueue"
	"botbackend/models"
)

func newSignedRequest(t *testing.T, privateKey ed25519.PrivateKey, body []byte) *http.Request {
	t.Helper()
	timestamp := "1700000000"
	signature := ed25519.Sign(privateKey, append([]byte(timestamp), body...))

	request := httptest.NewRequest(http.MethodPost, "/discord/interactions", bytes.NewReader(body))
	request.Header.Set("x-signature-ed25519", hex.EncodeToString(signature))
	request.Header.Set("x-signature-timestamp", timestamp)
	return request
}

func commandBody() []byte {
	return []byte(`{
		"type": 2,
		"channel_id": "444",
		"member": {"user": {"id": "111", "username": "someone", "discriminator": "0001"}},
		"data": {"name": "add_points", "options": [{"name": "user", "value": "222"}, {"name": "points", "value": 50}]}
	}`)
}

func TestHandleInteraction_Command_EnqueuesAndAcks(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	mockQueue := &natsqueue.MockQueueClient{}
	handler := NewInteractionsHandler(mockQueue, publicKey)

	var enqueued []byte
	mockQueue.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			enqueued = args.Get(1).([]byte)
		}).
		Return(nil).Once()

	recorder := httptest.NewRecorder()
	handler.HandleInteraction(recorder, newSignedRequest(t, privateKey, commandBody()))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"type":4,"data":{"content":"Working on it..."}}`, recorder.Body.String())

	// Exactly one enqueue, carrying the wire envelope
	mockQueue.AssertNumberOfCalls(t, "Publish", 1)
	var envelope models.InteractionEnvelope
	require.NoError(t, json.Unmarshal(enqueued, &envelope))
	assert.Equal(t, "add_points", envelope.Command)
	assert.Equal(t, "someone#0001", envelope.CommandIssuer)
	assert.Equal(t, "444", envelope.ChannelID)
}

func TestHandleInteraction_BadSignature_UnauthorizedAndNoEnqueue(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, otherPrivateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	mockQueue := &natsqueue.MockQueueClient{}
	handler := NewInteractionsHandler(mockQueue, publicKey)

	recorder := httptest.NewRecorder()
	handler.HandleInteraction(recorder, newSignedRequest(t, otherPrivateKey, commandBody()))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var body struct {
		Type int `json:"type"`
		Data struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Type)
	assert.Contains(t, body.Data.Content, "[UNAUTHORIZED]: ")

	mockQueue.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandleInteraction_MissingHeaders_Unauthorized(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	mockQueue := &natsqueue.MockQueueClient{}
	handler := NewInteractionsHandler(mockQueue, publicKey)

	request := httptest.NewRequest(http.MethodPost, "/discord/interactions", bytes.NewReader(commandBody()))
	recorder := httptest.NewRecorder()
	handler.HandleInteraction(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	mockQueue.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandleInteraction_Ping_PongWithoutEnqueue(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	mockQueue := &natsqueue.MockQueueClient{}
	handler := NewInteractionsHandler(mockQueue, publicKey)

	recorder := httptest.NewRecorder()
	handler.HandleInteraction(recorder, newSignedRequest(t, privateKey, []byte(`{"type":1}`)))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"type":1}`, recorder.Body.String())
	mockQueue.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandleInteraction_EnqueueFailure_ErrorResponse(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	mockQueue := &natsqueue.MockQueueClient{}
	handler := NewInteractionsHandler(mockQueue, publicKey)

	mockQueue.On("Publish", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	recorder := httptest.NewRecorder()
	handler.HandleInteraction(recorder, newSignedRequest(t, privateKey, commandBody()))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "[ERROR]: ")
}

func TestHandleInteraction_UnclassifiableBody_ErrorResponse(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	mockQueue := &natsqueue.MockQueueClient{}
	handler := NewInteractionsHandler(mockQueue, publicKey)

	// Authenticated but not a valid interaction shape
	recorder := httptest.NewRecorder()
	handler.HandleInteraction(recorder, newSignedRequest(t, privateKey, []byte(`{"type":2}`)))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	mockQueue.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
