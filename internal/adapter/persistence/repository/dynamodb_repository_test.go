package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bfinancial_sdk/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	put    *dynamodb.PutItemInput
	get    *dynamodb.GetItemInput
	update *dynamodb.UpdateItemInput
	query  *dynamodb.QueryInput

	item  map[string]types.AttributeValue
	items []map[string]types.AttributeValue
	err   error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.put = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.get = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.item}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.update = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.item}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.query = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.QueryOutput{Items: f.items}, nil
}

func samplePixRecord(t *testing.T) entities.PaymentRecord {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	resp := entities.NewInstantTransferResponse(entities.InstantTransfer{
		Status:     entities.NormalizeStatus(entities.RawStatusPending, ""),
		PaymentID:  "pix-1",
		QRCodeText: "000201",
	})
	rec, err := entities.NewPaymentRecord(entities.NewPixCreate(entities.PixCreate{Amount: 12.5, PayerEmail: "p@test.com"}), resp, now)
	require.NoError(t, err)
	rec.RawPayload = json.RawMessage(`{"data":{"payment_id":"pix-1"}}`)
	return rec
}

func TestPaymentRecordDynamoRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create uses a conditional put", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := newPaymentRecordRepository(ddb, "")

		rec := samplePixRecord(t)
		got, err := repo.Create(ctx, rec)
		require.NoError(t, err)
		assert.Equal(t, rec, got)

		require.NotNil(t, ddb.put)
		assert.Equal(t, defaultPaymentsTableName, aws.ToString(ddb.put.TableName))
		assert.Equal(t, "attribute_not_exists(#payment_id)", aws.ToString(ddb.put.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberS{Value: "pix-1"}, ddb.put.Item["payment_id"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "12.5"}, ddb.put.Item["amount"])
	})

	t.Run("get missing item", func(t *testing.T) {
		repo := newPaymentRecordRepository(&fakeDynamo{}, "records")
		got, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, got.PaymentID)
	})

	t.Run("get round trip", func(t *testing.T) {
		rec := samplePixRecord(t)
		av, err := attributevalue.MarshalMap(toPaymentRecordItem(rec))
		require.NoError(t, err)

		ddb := &fakeDynamo{item: av}
		repo := newPaymentRecordRepository(ddb, "records")
		got, err := repo.GetByID(ctx, "pix-1")
		require.NoError(t, err)

		assert.Equal(t, "records", aws.ToString(ddb.get.TableName))
		assert.True(t, aws.ToBool(ddb.get.ConsistentRead))
		assert.Equal(t, rec.PaymentID, got.PaymentID)
		assert.Equal(t, rec.Amount, got.Amount)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
		assert.JSONEq(t, string(rec.RawPayload), string(got.RawPayload))
		assert.Equal(t, rec.Response(), got.Response())
	})

	t.Run("update missing item", func(t *testing.T) {
		ddb := &fakeDynamo{err: &types.ConditionalCheckFailedException{}}
		repo := newPaymentRecordRepository(ddb, "")
		got, err := repo.Update(ctx, samplePixRecord(t))
		require.NoError(t, err)
		assert.Empty(t, got.PaymentID)
	})

	t.Run("update returns the new item", func(t *testing.T) {
		rec := samplePixRecord(t).WithResponse(entities.NewInstantTransferResponse(entities.InstantTransfer{
			Status:    entities.NormalizeStatus(entities.RawStatusApproved, ""),
			PaymentID: "pix-1",
		}), time.Date(2024, 5, 1, 12, 5, 0, 0, time.UTC))
		av, err := attributevalue.MarshalMap(toPaymentRecordItem(rec))
		require.NoError(t, err)

		ddb := &fakeDynamo{item: av}
		repo := newPaymentRecordRepository(ddb, "")
		got, err := repo.Update(ctx, rec)
		require.NoError(t, err)

		assert.Equal(t, entities.RawStatusApproved, got.Status)
		assert.Equal(t, &types.AttributeValueMemberS{Value: entities.RawStatusApproved}, ddb.update.ExpressionAttributeValues[":status"])
		assert.Equal(t, "payment_id", ddb.update.ExpressionAttributeNames["#payment_id"])
	})

	t.Run("errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		repo := newPaymentRecordRepository(&fakeDynamo{err: boom}, "")
		_, err := repo.GetByID(ctx, "x")
		assert.ErrorIs(t, err, boom)
		_, err = repo.Update(ctx, samplePixRecord(t))
		assert.ErrorIs(t, err, boom)
	})
}

func TestVerificationDynamoRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	run := entities.VerificationRun{
		ID:           "run-1",
		PaymentID:    "pix-1",
		TargetStatus: entities.RawStatusApproved,
		State:        entities.VerificationStateRunning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("create", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := newVerificationRepository(ddb, "")
		_, err := repo.Create(ctx, run)
		require.NoError(t, err)
		assert.Equal(t, defaultVerificationsTableName, aws.ToString(ddb.put.TableName))
		assert.Equal(t, &types.AttributeValueMemberS{Value: "running"}, ddb.put.Item["state"])
	})

	t.Run("list by payment uses the index", func(t *testing.T) {
		av, err := attributevalue.MarshalMap(toVerificationRunItem(run))
		require.NoError(t, err)
		ddb := &fakeDynamo{items: []map[string]types.AttributeValue{av, av}}
		repo := newVerificationRepository(ddb, "")

		runs, err := repo.ListByPaymentID(ctx, "pix-1")
		require.NoError(t, err)
		assert.Len(t, runs, 2)
		assert.Equal(t, verificationsPaymentIDIndex, aws.ToString(ddb.query.IndexName))
		assert.Equal(t, &types.AttributeValueMemberS{Value: "pix-1"}, ddb.query.ExpressionAttributeValues[":pid"])
		assert.Equal(t, run.TargetStatus, runs[0].TargetStatus)
	})

	t.Run("complete only closes running runs", func(t *testing.T) {
		done := run.Complete(entities.VerificationFail("Payment not found", entities.ErrPaymentNotFound), now.Add(time.Minute))
		av, err := attributevalue.MarshalMap(toVerificationRunItem(done))
		require.NoError(t, err)

		ddb := &fakeDynamo{item: av}
		repo := newVerificationRepository(ddb, "")
		got, err := repo.Complete(ctx, done)
		require.NoError(t, err)

		assert.Equal(t, entities.VerificationStateFailed, got.State)
		assert.Equal(t, entities.VerificationKindNotFound, got.FailureKind)
		assert.Contains(t, aws.ToString(ddb.update.ConditionExpression), "#state = :running")
	})

	t.Run("complete on closed run", func(t *testing.T) {
		repo := newVerificationRepository(&fakeDynamo{err: &types.ConditionalCheckFailedException{}}, "")
		got, err := repo.Complete(ctx, run)
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})
}
