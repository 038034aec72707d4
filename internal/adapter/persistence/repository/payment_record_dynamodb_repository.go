package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bfinancial_sdk/internal/domain/entities"
	"bfinancial_sdk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPaymentsTableName = "payment_records"

type paymentRecordItem struct {
	PaymentID   string `dynamodbav:"payment_id"`
	Method      string `dynamodbav:"method"`
	Status      string `dynamodbav:"status"`
	Cause       string `dynamodbav:"cause,omitempty"`
	PayerEmail  string `dynamodbav:"payer_email,omitempty"`
	Amount      string `dynamodbav:"amount"`
	QRCodeImage string `dynamodbav:"qr_code_image,omitempty"`
	QRCodeText  string `dynamodbav:"qr_code_text,omitempty"`
	TotalAmount string `dynamodbav:"total_amount,omitempty"`
	Increase    string `dynamodbav:"increase,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
	RawPayload  string `dynamodbav:"raw_payload,omitempty"`
}

// PaymentRecordDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: payment_id (string)
type PaymentRecordDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordDynamoRepository)(nil)

func NewPaymentRecordDynamoRepository(ddb *dynamodb.Client, tableName string) *PaymentRecordDynamoRepository {
	return newPaymentRecordRepository(ddb, tableName)
}

func newPaymentRecordRepository(ddb dynamoAPI, tableName string) *PaymentRecordDynamoRepository {
	if tableName == "" {
		tableName = defaultPaymentsTableName
	}
	return &PaymentRecordDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentRecordDynamoRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	av, err := attributevalue.MarshalMap(toPaymentRecordItem(p))
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#payment_id)"),
		ExpressionAttributeNames: map[string]string{
			"#payment_id": "payment_id",
		},
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentRecordDynamoRepository) GetByID(ctx context.Context, paymentID string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"payment_id": &types.AttributeValueMemberS{Value: paymentID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

// Update overwrites the gateway-owned fields of an existing record. A missing
// record yields the zero value.
func (r *PaymentRecordDynamoRepository) Update(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	it := toPaymentRecordItem(p)
	if it.UpdatedAt == "" {
		it.UpdatedAt = formatTime(time.Now())
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"payment_id": &types.AttributeValueMemberS{Value: p.PaymentID},
		},
		ConditionExpression: aws.String("attribute_exists(#payment_id)"),
		UpdateExpression: aws.String("SET #status = :status, #cause = :cause, #qr_code_image = :qr_code_image, " +
			"#qr_code_text = :qr_code_text, #total_amount = :total_amount, #increase = :increase, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":        &types.AttributeValueMemberS{Value: it.Status},
			":cause":         &types.AttributeValueMemberS{Value: it.Cause},
			":qr_code_image": &types.AttributeValueMemberS{Value: it.QRCodeImage},
			":qr_code_text":  &types.AttributeValueMemberS{Value: it.QRCodeText},
			":total_amount":  &types.AttributeValueMemberS{Value: it.TotalAmount},
			":increase":      &types.AttributeValueMemberS{Value: it.Increase},
			":updated_at":    &types.AttributeValueMemberS{Value: it.UpdatedAt},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#status":        "status",
			"#cause":         "cause",
			"#qr_code_image": "qr_code_image",
			"#qr_code_text":  "qr_code_text",
			"#total_amount":  "total_amount",
			"#increase":      "increase",
			"#updated_at":    "updated_at",
		}, map[string]string{"#payment_id": "payment_id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentRecord{}, nil
		}
		return entities.PaymentRecord{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentRecord{}, nil
	}
	var updated paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(updated), nil
}

func toPaymentRecordItem(p entities.PaymentRecord) paymentRecordItem {
	it := paymentRecordItem{
		PaymentID:   p.PaymentID,
		Method:      string(p.Method),
		Status:      p.Status,
		Cause:       p.Cause,
		PayerEmail:  p.PayerEmail,
		Amount:      floatToString(p.Amount),
		QRCodeImage: p.QRCodeImage,
		QRCodeText:  p.QRCodeText,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
		RawPayload:  string(p.RawPayload),
	}
	if p.Method == entities.PaymentMethodCard {
		it.TotalAmount = floatToString(p.TotalAmount)
		it.Increase = floatToString(p.Increase)
	}
	return it
}

func fromPaymentRecordItem(it paymentRecordItem) entities.PaymentRecord {
	p := entities.PaymentRecord{
		PaymentID:   it.PaymentID,
		Method:      entities.PaymentMethod(it.Method),
		Status:      it.Status,
		Cause:       it.Cause,
		PayerEmail:  it.PayerEmail,
		Amount:      parseFloat(it.Amount),
		QRCodeImage: it.QRCodeImage,
		QRCodeText:  it.QRCodeText,
		TotalAmount: parseFloat(it.TotalAmount),
		Increase:    parseFloat(it.Increase),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	if it.RawPayload != "" && json.Valid([]byte(it.RawPayload)) {
		p.RawPayload = json.RawMessage(it.RawPayload)
	}
	return p
}
