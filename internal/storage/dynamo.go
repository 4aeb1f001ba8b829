package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DynamoAPI is the subset of the DynamoDB client the adapter needs.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Dynamo keeps values in a DynamoDB table keyed by the string attribute "storage_key".
type Dynamo struct {
	client DynamoAPI
	table  string
}

type dynamoItem struct {
	Key   string `dynamodbav:"storage_key"`
	Value []byte `dynamodbav:"value"`
}

func NewDynamo(client DynamoAPI, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

// OpenDynamo builds a client from the default AWS credential chain.
func OpenDynamo(ctx context.Context, region, table string) (*Dynamo, error) {
	if table == "" {
		return nil, errors.New("DYNAMODB_TABLE is not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	log.WithField("table", table).Info("DynamoDB storage ready")
	return NewDynamo(dynamodb.NewFromConfig(cfg), table), nil
}

func (d *Dynamo) keyOf(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"storage_key": &types.AttributeValueMemberS{Value: key},
	}
}

func (d *Dynamo) Get(ctx context.Context, key string) ([]byte, bool) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       d.keyOf(key),
	})
	if err != nil {
		log.WithField("key", key).WithError(err).Warn("DynamoDB read failed")
		return nil, false
	}
	if out == nil || out.Item == nil {
		return nil, false
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		log.WithField("key", key).WithError(err).Warn("DynamoDB item unreadable")
		return nil, false
	}
	return item.Value, true
}

func (d *Dynamo) Set(ctx context.Context, key string, value []byte) error {
	item, err := attributevalue.MarshalMap(dynamoItem{Key: key, Value: value})
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	return errors.Wrapf(err, "write %s", key)
}

func (d *Dynamo) Remove(ctx context.Context, key string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       d.keyOf(key),
	})
	return errors.Wrapf(err, "remove %s", key)
}
