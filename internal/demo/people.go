package demo

import (
	"context"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
)

// Person is a record in the people table.
type Person struct {
	ID   string
	Name string
}

// PeopleStore persists people.
type PeopleStore interface {
	List(ctx context.Context) ([]Person, error)
	Add(ctx context.Context, p Person) error
}

// DynamoPeople stores people in a DynamoDB table with a string partition key "id".
type DynamoPeople struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoPeople creates the store for the configured table.
func NewDynamoPeople(client *dynamodb.Client, env Env) *DynamoPeople {
	return &DynamoPeople{client: client, table: env.PeopleTable}
}

// List scans the whole table, ordered by name.
func (s *DynamoPeople) List(ctx context.Context) ([]Person, error) {
	var people []Person

	pages := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{TableName: aws.String(s.table)})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", s.table)
		}

		for _, item := range page.Items {
			people = append(people, Person{ID: stringAttr(item, "id"), Name: stringAttr(item, "name")})
		}
	}

	slices.SortFunc(people, func(a, b Person) int { return strings.Compare(a.Name, b.Name) })

	return people, nil
}

// Add puts the person into the table, replacing a person with the same id.
func (s *DynamoPeople) Add(ctx context.Context, p Person) error {
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"id":   &types.AttributeValueMemberS{Value: p.ID},
			"name": &types.AttributeValueMemberS{Value: p.Name},
		},
	}); err != nil {
		return errors.Wrapf(err, "failed to put person %s", p.ID)
	}

	return nil
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}

	return ""
}

var _ PeopleStore = (*DynamoPeople)(nil)
