package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"botbackend/models"
)

func (u *WorkerUseCase) handleAddPoints(
	ctx context.Context,
	envelope *models.InteractionEnvelope,
) (string, error) {
	return u.recordPoints(ctx, envelope, 1)
}

func (u *WorkerUseCase) handleRemovePoints(
	ctx context.Context,
	envelope *models.InteractionEnvelope,
) (string, error) {
	// Removal is just a negated transaction through the same ledger path,
	// self-transaction guard included
	return u.recordPoints(ctx, envelope, -1)
}

func (u *WorkerUseCase) recordPoints(
	ctx context.Context,
	envelope *models.InteractionEnvelope,
	sign int64,
) (string, error) {
	userID, err := envelope.StringOption("user")
	if err != nil {
		return "", err
	}
	points, err := envelope.IntOption("points")
	if err != nil {
		return "", err
	}

	subject, err := u.discordClient.GetUserTag(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := u.pointsService.Record(ctx, subject, envelope.CommandIssuer, sign*points); err != nil {
		return "", err
	}

	return "Transaction completed :eggplant:", nil
}

func (u *WorkerUseCase) handlePointBalance(
	ctx context.Context,
	envelope *models.InteractionEnvelope,
) (string, error) {
	balances, err := u.pointsService.BalanceReport(ctx)
	if err != nil {
		return "", err
	}

	report, err := json.MarshalIndent(balances, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to format balance report: %w", err)
	}

	return "```\n" + string(report) + "\n```", nil
}

func (u *WorkerUseCase) handleUpdateContact(
	ctx context.Context,
	envelope *models.InteractionEnvelope,
) (string, error) {
	phoneNumber, err := envelope.StringOption("phone_number")
	if err != nil {
		return "", err
	}

	if err := u.contactsService.UpdateContact(ctx, envelope.CommandIssuer, phoneNumber); err != nil {
		return "", err
	}

	return "Info updated!", nil
}

func (u *WorkerUseCase) handleRaidAlert(
	ctx context.Context,
	envelope *models.InteractionEnvelope,
) (string, error) {
	userID, err := envelope.StringOption("user")
	if err != nil {
		return "", err
	}

	subject, err := u.discordClient.GetUserTag(ctx, userID)
	if err != nil {
		return "", err
	}

	maybeContact, err := u.contactsService.GetContact(ctx, subject)
	if err != nil {
		return "", err
	}
	if !maybeContact.IsPresent() {
		return "", fmt.Errorf("no contact info registered for %s", subject)
	}

	contact := maybeContact.MustGet()
	if err := u.notificationsService.RaidAlert(ctx, u.originationNumber, contact.PhoneNumber); err != nil {
		return "", err
	}

	return "User has been contacted!", nil
}

func (u *WorkerUseCase) handleRegisteredUsers(
	ctx context.Context,
	envelope *models.InteractionEnvelope,
) (string, error) {
	subjects, err := u.contactsService.ListContacts(ctx)
	if err != nil {
		return "", err
	}
	if len(subjects) == 0 {
		return "No registered users yet!", nil
	}

	return strings.Join(subjects, "\n"), nil
}
