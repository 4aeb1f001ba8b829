package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	fail  error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func keyString(key map[string]types.AttributeValue) string {
	return key["storage_key"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyString(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.items[keyString(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	delete(f.items, keyString(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoAdapter(t *testing.T) {
	ctx := context.Background()
	client := newFakeDynamo()
	d := NewDynamo(client, "studio")

	require.NoError(t, Save(ctx, d, "session:1", sample{Name: "ada"}))

	var got sample
	require.True(t, Load(ctx, d, "session:1", &got))
	assert.Equal(t, "ada", got.Name)

	require.NoError(t, d.Remove(ctx, "session:1"))
	_, ok := d.Get(ctx, "session:1")
	assert.False(t, ok)
}

func TestDynamoFailures(t *testing.T) {
	ctx := context.Background()
	client := newFakeDynamo()
	client.fail = errors.New("throttled")
	d := NewDynamo(client, "studio")

	_, ok := d.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, d.Set(ctx, "k", []byte("v")))
	assert.Error(t, d.Remove(ctx, "k"))
}
