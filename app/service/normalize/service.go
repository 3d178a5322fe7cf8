package normalize

import (
	"fmt"
	"math"
	"time"

	"pricebot/app/client/predict"
	"pricebot/app/config"
	"pricebot/app/service/catalog"
	"pricebot/app/util/apperr"

	"github.com/samber/do"
)

// DateFormat is the wire format produced by the calendar widget.
const DateFormat = "2006/01/02"

// The model was trained on data ending at this date; requested dates are
// measured in calendar days from it.
var baselineDate = time.Date(2024, time.January, 23, 0, 0, 0, 0, time.UTC)

// bucketDays quantizes elapsed days into the interval width the model was
// trained with. Training artifact, do not touch without retraining.
const bucketDays = 4

type Rounding int

const (
	// RoundFractional keeps intervals fractional, rounded to 2 decimals.
	RoundFractional Rounding = iota
	// RoundFloor floors intervals to whole buckets.
	RoundFloor
)

// Service turns a raw (symbol, date string) selection into a validated
// prediction request. No side effects, no network.
type Service struct {
	catalogSvc    *catalog.Service
	signatureName string
	rounding      Rounding
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	rounding := RoundFractional
	if cfg.Predictor.Rounding == "floor" {
		rounding = RoundFloor
	}

	return &Service{
		catalogSvc:    do.MustInvoke[*catalog.Service](di),
		signatureName: cfg.Predictor.SignatureName,
		rounding:      rounding,
	}, nil
}

func (s *Service) Normalize(symbol, dateString string) (predict.Request, error) {
	tokenIndex, ok := s.catalogSvc.Lookup(symbol)
	if !ok {
		return predict.Request{}, apperr.New(apperr.InvalidToken, fmt.Sprintf("unknown symbol %q", symbol))
	}

	requestedDate, err := time.ParseInLocation(DateFormat, dateString, time.UTC)
	if err != nil {
		return predict.Request{}, apperr.Wrap(apperr.InvalidDate, fmt.Sprintf("unparseable date %q", dateString), err)
	}

	daysDifference := calendarDaysBetween(baselineDate, requestedDate)
	if daysDifference < 0 {
		detail := fmt.Sprintf("date %s precedes baseline %s", dateString, baselineDate.Format(DateFormat))
		return predict.Request{}, apperr.New(apperr.InvalidDate, detail)
	}

	return predict.Request{
		SignatureName: s.signatureName,
		IntervalCount: s.intervalCount(daysDifference),
		TokenIndex:    tokenIndex,
	}, nil
}

func (s *Service) intervalCount(daysDifference int) float64 {
	raw := float64(daysDifference) / bucketDays

	var result float64
	switch s.rounding {
	case RoundFloor:
		result = math.Floor(raw)
	default:
		result = math.Round(raw*100) / 100
	}

	return math.Max(0, result)
}

func calendarDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}

// BaselineDate returns the end of the model's training window.
func BaselineDate() time.Time {
	return baselineDate
}
