package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type RosterStackProps struct {
	awscdk.StackProps
}

func NewRosterStack(scope constructs.Construct, id string, props *RosterStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	bucket := awss3.NewBucket(stack, jsii.String("RosterBucket"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		EnforceSSL:        jsii.Bool(true),
		Versioned:         jsii.Bool(true),
		RemovalPolicy:     awscdk.RemovalPolicy_RETAIN,
	})

	lambdaFn := awslambda.NewFunction(stack, jsii.String("RosterApi"), &awslambda.FunctionProps{
		Runtime: awslambda.Runtime_PROVIDED_AL2023(),
		Handler: jsii.String("bootstrap"),
		Code:    awslambda.Code_FromAsset(jsii.String("../"), nil),
		Timeout: awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &map[string]*string{
			"APP":            jsii.String("prod"),
			"S3_BUCKET":      bucket.BucketName(),
			"S3_PREFIX":      jsii.String("roster"),
			"WRITE_KEY_HASH": jsii.String(os.Getenv("WRITE_KEY_HASH")),
			"CORS_ORIGINS":   jsii.String(os.Getenv("CORS_ORIGINS")),
		},

		// Each instance holds its own copy of the roster and rewrites the whole
		// document, so only one may run.
		ReservedConcurrentExecutions: jsii.Number(1),
	})

	bucket.GrantReadWrite(lambdaFn, nil)

	awsapigateway.NewLambdaRestApi(stack, jsii.String("RosterApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("BucketName"), &awscdk.CfnOutputProps{Value: bucket.BucketName()})

	return stack
}

func main() {
	app := awscdk.NewApp(nil)
	NewRosterStack(app, "RosterStack", &RosterStackProps{})
	app.Synth(nil)
}
