package demo

import (
	"time"

	"github.com/advdv/bpipe/bapp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/fx"
)

const peopleTimeout = 5 * time.Second

// Options returns the app options that provide the dependencies of [Register].
func Options() []bapp.Option {
	return []bapp.Option{
		bapp.WithAWSClient(func(cfg aws.Config) *dynamodb.Client {
			return dynamodb.NewFromConfig(cfg)
		}),
		bapp.WithFx(
			fx.Provide(NewUserList),
			fx.Provide(fx.Annotate(NewDynamoPeople, fx.As(new(PeopleStore)))),
		),
	}
}

// NewApp creates the demo app.
func NewApp() *bapp.App {
	return bapp.NewApp[Env](Register, Options()...)
}
