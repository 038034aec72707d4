package repository

import (
	"context"
	"errors"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultVerificationsTableName = "verification_runs"
	verificationsPaymentIDIndex   = "payment_id-index"
)

type verificationRunItem struct {
	ID           string `dynamodbav:"id"`
	PaymentID    string `dynamodbav:"payment_id"`
	TargetStatus string `dynamodbav:"target_status"`
	State        string `dynamodbav:"state"`
	Message      string `dynamodbav:"message,omitempty"`
	FailureKind  string `dynamodbav:"failure_kind,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// VerificationDynamoRepository persists VerificationRun entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: payment_id-index (PK: payment_id)
type VerificationDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IVerificationRepository = (*VerificationDynamoRepository)(nil)

func NewVerificationDynamoRepository(ddb *dynamodb.Client, tableName string) *VerificationDynamoRepository {
	return newVerificationRepository(ddb, tableName)
}

func newVerificationRepository(ddb dynamoAPI, tableName string) *VerificationDynamoRepository {
	if tableName == "" {
		tableName = defaultVerificationsTableName
	}
	return &VerificationDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *VerificationDynamoRepository) Create(ctx context.Context, run entities.VerificationRun) (entities.VerificationRun, error) {
	av, err := attributevalue.MarshalMap(toVerificationRunItem(run))
	if err != nil {
		return entities.VerificationRun{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.VerificationRun{}, err
	}
	return run, nil
}

func (r *VerificationDynamoRepository) GetByID(ctx context.Context, id string) (entities.VerificationRun, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.VerificationRun{}, err
	}
	if len(out.Item) == 0 {
		return entities.VerificationRun{}, nil
	}

	var it verificationRunItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.VerificationRun{}, err
	}
	return fromVerificationRunItem(it), nil
}

func (r *VerificationDynamoRepository) ListByPaymentID(ctx context.Context, paymentID string) ([]entities.VerificationRun, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(verificationsPaymentIDIndex),
		KeyConditionExpression: aws.String("payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: paymentID},
		},
	})
	if err != nil {
		return nil, err
	}

	runs := make([]entities.VerificationRun, 0, len(out.Items))
	for _, raw := range out.Items {
		var it verificationRunItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		runs = append(runs, fromVerificationRunItem(it))
	}
	return runs, nil
}

// Complete stores the outcome of a run that is still running. Closing an
// unknown or already closed run yields the zero value.
func (r *VerificationDynamoRepository) Complete(ctx context.Context, run entities.VerificationRun) (entities.VerificationRun, error) {
	it := toVerificationRunItem(run)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: run.ID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #state = :running"),
		UpdateExpression:    aws.String("SET #state = :state, #message = :message, #failure_kind = :failure_kind, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":running":      &types.AttributeValueMemberS{Value: string(entities.VerificationStateRunning)},
			":state":        &types.AttributeValueMemberS{Value: it.State},
			":message":      &types.AttributeValueMemberS{Value: it.Message},
			":failure_kind": &types.AttributeValueMemberS{Value: it.FailureKind},
			":updated_at":   &types.AttributeValueMemberS{Value: it.UpdatedAt},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#state":        "state",
			"#message":      "message",
			"#failure_kind": "failure_kind",
			"#updated_at":   "updated_at",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.VerificationRun{}, nil
		}
		return entities.VerificationRun{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.VerificationRun{}, nil
	}
	var updated verificationRunItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return entities.VerificationRun{}, err
	}
	return fromVerificationRunItem(updated), nil
}

func toVerificationRunItem(run entities.VerificationRun) verificationRunItem {
	return verificationRunItem{
		ID:           run.ID,
		PaymentID:    run.PaymentID,
		TargetStatus: run.TargetStatus,
		State:        string(run.State),
		Message:      run.Message,
		FailureKind:  run.FailureKind,
		CreatedAt:    formatTime(run.CreatedAt),
		UpdatedAt:    formatTime(run.UpdatedAt),
	}
}

func fromVerificationRunItem(it verificationRunItem) entities.VerificationRun {
	return entities.VerificationRun{
		ID:           it.ID,
		PaymentID:    it.PaymentID,
		TargetStatus: it.TargetStatus,
		State:        entities.VerificationState(it.State),
		Message:      it.Message,
		FailureKind:  it.FailureKind,
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}
