package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"botbackend/clients"
	"botbackend/clients/discord"
	"botbackend/clients/natsqueue"
	"botbackend/core"
	"botbackend/models"
	"botbackend/services/contacts"
	"botbackend/services/notifications"
	"botbackend/services/points"
)

type workerFixture struct {
	queue         *natsqueue.MockQueueClient
	discord       *discord.MockDiscordClient
	points        *points.MockPointsService
	contacts      *contacts.MockContactsService
	notifications *notifications.MockNotificationsService
	useCase       *WorkerUseCase
}

func newWorkerFixture() *workerFixture {
	f := &workerFixture{
		queue:         &natsqueue.MockQueueClient{},
		discord:       &discord.MockDiscordClient{},
		points:        &points.MockPointsService{},
		contacts:      &contacts.MockContactsService{},
		notifications: &notifications.MockNotificationsService{},
	}
	f.useCase = NewWorkerUseCase(f.queue, f.discord, f.points, f.contacts, f.notifications, "+10000000000", 10)
	return f
}

func queuedEnvelope(t *testing.T, envelope *models.InteractionEnvelope) *natsqueue.MockQueuedMessage {
	t.Helper()
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	message := &natsqueue.MockQueuedMessage{}
	message.On("Body").Return(body)
	message.On("Ack").Return(nil).Once()
	return message
}

func TestWorker_AddPoints_Success(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command: "add_points",
		Options: []models.CommandOption{
			{Name: "user", Value: "222"},
			{Name: "points", Value: float64(50)},
		},
		CommandIssuer: "issuer#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.discord.On("GetUserTag", mock.Anything, "222").Return("subject#0002", nil)
	f.points.On("Record", mock.Anything, "subject#0002", "issuer#0001", int64(50)).Return(nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "Transaction completed :eggplant:").Return(nil)

	err := f.useCase.ProcessBatch(context.Background())

	assert.NoError(t, err)
	message.AssertNumberOfCalls(t, "Ack", 1)
	f.queue.AssertExpectations(t)
	f.discord.AssertExpectations(t)
	f.points.AssertExpectations(t)
}

func TestWorker_RemovePoints_NegatesDelta(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command: "remove_points",
		Options: []models.CommandOption{
			{Name: "user", Value: "222"},
			{Name: "points", Value: float64(30)},
		},
		CommandIssuer: "issuer#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.discord.On("GetUserTag", mock.Anything, "222").Return("subject#0002", nil)
	f.points.On("Record", mock.Anything, "subject#0002", "issuer#0001", int64(-30)).Return(nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "Transaction completed :eggplant:").Return(nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	f.points.AssertExpectations(t)
}

func TestWorker_HandlerError_RepliesWithErrorTextAndAcks(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command: "add_points",
		Options: []models.CommandOption{
			{Name: "user", Value: "111"},
			{Name: "points", Value: float64(5)},
		},
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.discord.On("GetUserTag", mock.Anything, "111").Return("someone#0001", nil)
	f.points.On("Record", mock.Anything, "someone#0001", "someone#0001", int64(5)).
		Return(core.ErrSelfTransaction)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", core.ErrSelfTransaction.Error()).Return(nil)

	err := f.useCase.ProcessBatch(context.Background())

	assert.NoError(t, err, "a handler failure must not fail the batch")
	message.AssertNumberOfCalls(t, "Ack", 1)
	f.discord.AssertExpectations(t)
}

func TestWorker_MissingOption_RepliesWithErrorText(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command:       "update_contact",
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "missing required option: phone_number").
		Return(nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	message.AssertNumberOfCalls(t, "Ack", 1)
	f.contacts.AssertNotCalled(t, "UpdateContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_HandlerPanic_ContainedAckedAndBatchContinues(t *testing.T) {
	f := newWorkerFixture()

	panicking := queuedEnvelope(t, &models.InteractionEnvelope{
		Command: "add_points",
		Options: []models.CommandOption{
			{Name: "user", Value: "222"},
			{Name: "points", Value: float64(5)},
		},
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})
	healthy := queuedEnvelope(t, &models.InteractionEnvelope{
		Command:       "registered_users",
		CommandIssuer: "someone#0001",
		ChannelID:     "chan2",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).
		Return([]clients.QueuedMessage{panicking, healthy}, nil)
	f.discord.On("GetUserTag", mock.Anything, "222").Panic("user cache corrupted")
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "failed to handle command add_points: internal error").
		Return(nil)
	f.contacts.On("ListContacts", mock.Anything).Return([]string{"a#0001"}, nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan2", "a#0001").Return(nil)

	assert.NotPanics(t, func() {
		require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	})

	// The panicking message is still acked exactly once, after handling,
	// and the rest of the batch is unaffected
	panicking.AssertNumberOfCalls(t, "Ack", 1)
	healthy.AssertNumberOfCalls(t, "Ack", 1)
	f.discord.AssertExpectations(t)
}

func TestWorker_UnknownCommand_SilentlyIgnoredButAcked(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command:       "mystery",
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	message.AssertNumberOfCalls(t, "Ack", 1)
	f.discord.AssertNotCalled(t, "SendChannelMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_UndecodableBody_Acked(t *testing.T) {
	f := newWorkerFixture()

	message := &natsqueue.MockQueuedMessage{}
	message.On("Body").Return([]byte("{{{"))
	message.On("Ack").Return(nil).Once()

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	message.AssertNumberOfCalls(t, "Ack", 1)
	f.discord.AssertNotCalled(t, "SendChannelMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_ReplyFailure_StillAcks(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command:       "registered_users",
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.contacts.On("ListContacts", mock.Anything).Return([]string{"a#0001"}, nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "a#0001").
		Return(errors.New("channel API down"))

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	message.AssertNumberOfCalls(t, "Ack", 1)
}

func TestWorker_PointBalance_FormatsFencedReport(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command:       "point_balance",
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	balances := []*models.PointBalance{{Subject: "a#0001", Total: 70}}
	report, err := json.MarshalIndent(balances, "", "    ")
	require.NoError(t, err)

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.points.On("BalanceReport", mock.Anything).Return(balances, nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "```\n"+string(report)+"\n```").Return(nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	f.discord.AssertExpectations(t)
}

func TestWorker_UpdateContact_Success(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command: "update_contact",
		Options: []models.CommandOption{
			{Name: "phone_number", Value: "+12223334444"},
		},
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.contacts.On("UpdateContact", mock.Anything, "someone#0001", "+12223334444").Return(nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "Info updated!").Return(nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	f.contacts.AssertExpectations(t)
}

func TestWorker_RaidAlert_Success(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command: "raid_alert",
		Options: []models.CommandOption{
			{Name: "user", Value: "333"},
		},
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	contact := &models.ContactRecord{Subject: "target#0003", PhoneNumber: "+12223334444"}

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.discord.On("GetUserTag", mock.Anything, "333").Return("target#0003", nil)
	f.contacts.On("GetContact", mock.Anything, "target#0003").Return(mo.Some(contact), nil)
	f.notifications.On("RaidAlert", mock.Anything, "+10000000000", "+12223334444").Return(nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "User has been contacted!").Return(nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	f.notifications.AssertExpectations(t)
}

func TestWorker_RaidAlert_NoContactRegistered(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command: "raid_alert",
		Options: []models.CommandOption{
			{Name: "user", Value: "333"},
		},
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.discord.On("GetUserTag", mock.Anything, "333").Return("target#0003", nil)
	f.contacts.On("GetContact", mock.Anything, "target#0003").
		Return(mo.None[*models.ContactRecord](), nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "no contact info registered for target#0003").
		Return(nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	message.AssertNumberOfCalls(t, "Ack", 1)
	f.notifications.AssertNotCalled(t, "RaidAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_RegisteredUsers_EmptyDirectory(t *testing.T) {
	f := newWorkerFixture()

	message := queuedEnvelope(t, &models.InteractionEnvelope{
		Command:       "registered_users",
		CommandIssuer: "someone#0001",
		ChannelID:     "chan1",
	})

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{message}, nil)
	f.contacts.On("ListContacts", mock.Anything).Return([]string{}, nil)
	f.discord.On("SendChannelMessage", mock.Anything, "chan1", "No registered users yet!").Return(nil)

	require.NoError(t, f.useCase.ProcessBatch(context.Background()))
	f.discord.AssertExpectations(t)
}

func TestWorker_EmptyBatch_NoOp(t *testing.T) {
	f := newWorkerFixture()

	f.queue.On("FetchBatch", mock.Anything, 10).Return([]clients.QueuedMessage{}, nil)

	assert.NoError(t, f.useCase.ProcessBatch(context.Background()))
}

func TestWorker_FetchFailure_Propagates(t *testing.T) {
	f := newWorkerFixture()

	f.queue.On("FetchBatch", mock.Anything, 10).Return(nil, errors.New("queue unreachable"))

	assert.Error(t, f.useCase.ProcessBatch(context.Background()))
}
