package aws

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/cenkalti/backoff/v5"
)

const (
	// metricPeriodSeconds is the aggregation period for traffic metrics (1 hour).
	metricPeriodSeconds = 3600
	// metricMaxAttempts bounds retries of a single statistics query.
	metricMaxAttempts = 3
)

// MetricsAPI is the minimal interface for the CloudWatch operations the
// traffic oracle needs.
type MetricsAPI interface {
	GetMetricStatistics(ctx context.Context, input *cloudwatch.GetMetricStatisticsInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// TrafficOracle answers "did this resource see any traffic over the trailing
// window". A single hourly period with a positive Sum is sufficient evidence
// of activity, so the idleness test is conservative.
type TrafficOracle struct {
	client       MetricsAPI
	lookbackDays int
	now          func() time.Time
}

// NewTrafficOracle creates an oracle over the given lookback window in days.
func NewTrafficOracle(client MetricsAPI, lookbackDays int) *TrafficOracle {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	return &TrafficOracle{client: client, lookbackDays: lookbackDays, now: time.Now}
}

// HadActivity reports whether any hourly Sum datapoint for the metric was
// strictly positive over the lookback window. A non-nil error means the
// answer is indeterminate; callers must skip the resource rather than flag
// it on missing data.
func (o *TrafficOracle) HadActivity(ctx context.Context, namespace, metricName, dimensionName, dimensionValue string) (bool, error) {
	end := o.now().UTC()
	start := end.Add(-time.Duration(o.lookbackDays) * 24 * time.Hour)

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  awssdk.String(namespace),
		MetricName: awssdk.String(metricName),
		Dimensions: []cwtypes.Dimension{
			{Name: awssdk.String(dimensionName), Value: awssdk.String(dimensionValue)},
		},
		StartTime:  awssdk.Time(start),
		EndTime:    awssdk.Time(end),
		Period:     awssdk.Int32(metricPeriodSeconds),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticSum},
	}

	// Idempotent read, safe to retry with backoff.
	out, err := backoff.Retry(ctx, func() (*cloudwatch.GetMetricStatisticsOutput, error) {
		return o.client.GetMetricStatistics(ctx, input)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(metricMaxAttempts))
	if err != nil {
		return false, fmt.Errorf("get metric statistics (%s/%s): %w", namespace, metricName, err)
	}

	for _, dp := range out.Datapoints {
		if dp.Sum != nil && *dp.Sum > 0 {
			return true, nil
		}
	}
	return false, nil
}
