package images

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoRepo implements Repo against a DynamoDB table keyed by image_id.
//
// The table carries no secondary index, so owner- and status-scoped listings
// are realized as full scans with post-filtering and client-side sorting,
// O(total active records) per call. PGRepo is the owner-indexed alternative.
type DynamoRepo struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoRepo creates a DynamoDB-backed metadata repo.
func NewDynamoRepo(ctx context.Context, region, table string) (*DynamoRepo, error) {
	if table == "" {
		return nil, fmt.Errorf("dynamodb table is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &DynamoRepo{
		client: dynamodb.NewFromConfig(cfg),
		table:  table,
	}, nil
}

// Create writes a new record.
func (r *DynamoRepo) Create(ctx context.Context, img Image) error {
	item, err := attributevalue.MarshalMap(img)
	if err != nil {
		return fmt.Errorf("%w: marshal item: %v", ErrMetadata, err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: put item: %v", ErrMetadata, err)
	}
	return nil
}

// GetByID returns the record regardless of status.
func (r *DynamoRepo) GetByID(ctx context.Context, imageID string) (Image, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       recordKey(imageID),
	})
	if err != nil {
		return Image{}, fmt.Errorf("%w: get item: %v", ErrMetadata, err)
	}
	if len(out.Item) == 0 {
		return Image{}, ErrNotFound
	}

	var img Image
	if err := attributevalue.UnmarshalMap(out.Item, &img); err != nil {
		return Image{}, fmt.Errorf("%w: unmarshal item: %v", ErrMetadata, err)
	}
	return img, nil
}

// ListByOwner returns active records for owner, newest first.
func (r *DynamoRepo) ListByOwner(ctx context.Context, owner string) ([]Image, error) {
	items, err := r.scan(ctx,
		"#owner = :owner AND #status = :status",
		map[string]string{"#owner": "owner", "#status": "status"},
		map[string]types.AttributeValue{
			":owner":  &types.AttributeValueMemberS{Value: owner},
			":status": &types.AttributeValueMemberS{Value: StatusActive},
		},
	)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// ListRecent returns the limit most recent active records. Truncation
// happens after the full scan is sorted, never per page.
func (r *DynamoRepo) ListRecent(ctx context.Context, limit int) ([]Image, error) {
	items, err := r.scan(ctx,
		"#status = :status",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: StatusActive},
		},
	)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// SoftDelete flips the record's status unconditionally; a missing ID results
// in a vestigial item with only a status attribute being ignored by listings,
// matching the backend's upsert semantics.
func (r *DynamoRepo) SoftDelete(ctx context.Context, imageID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.table),
		Key:                      recordKey(imageID),
		UpdateExpression:         aws.String("SET #status = :status"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: StatusDeleted},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: update item: %v", ErrMetadata, err)
	}
	return nil
}

func (r *DynamoRepo) scan(ctx context.Context, filter string, names map[string]string, values map[string]types.AttributeValue) ([]Image, error) {
	var items []Image
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.table),
			FilterExpression:          aws.String(filter),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrMetadata, err)
		}

		var page []Image
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("%w: unmarshal scan page: %v", ErrMetadata, err)
		}
		items = append(items, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

func recordKey(imageID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"image_id": &types.AttributeValueMemberS{Value: imageID},
	}
}

var _ Repo = (*DynamoRepo)(nil)
