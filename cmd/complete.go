package cmd

import (
	"slices"

	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/date"
	"github.com/etnz/fundwatch/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictFunds completes fund names from the data folder.
var predictFunds = complete.PredictFunc(func(prefix string) []string {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	catalog, err := fundwatch.ScanDir(cfg.DataDir)
	if err != nil {
		return nil
	}
	return catalog.Funds()
})

// predictMonths completes the months available for any fund of the data folder, as 2024-09 keys.
var predictMonths = complete.PredictFunc(func(prefix string) []string {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	catalog, err := fundwatch.ScanDir(cfg.DataDir)
	if err != nil {
		return nil
	}
	var months []date.Month
	for _, fund := range catalog.Funds() {
		for _, m := range catalog.Months(fund) {
			if !slices.Contains(months, m) {
				months = append(months, m)
			}
		}
	}
	slices.SortFunc(months, date.Month.Compare)
	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, m.Key())
	}
	return keys
})

var monthFlagsPredictors = map[string]complete.Predictor{
	"from": predictMonths,
	"to":   predictMonths,
	"last": predict.Something,
}

// Completion describes the subcommands and flags of mfw for shell completion.
func Completion() *complete.Command {
	withMonths := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		for k, v := range monthFlagsPredictors {
			flags[k] = v
		}
		return flags
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"funds": {},
			"holdings": {
				Flags: map[string]complete.Predictor{"m": predictMonths, "top": predict.Something},
				Args:  predictFunds,
			},
			"changes": {
				Flags: withMonths(map[string]complete.Predictor{
					"significant": predict.Something,
					"status":      predict.Set{"added", "increased", "unchanged", "decreased", "removed"},
					"json":        predict.Nothing,
				}),
				Args: predictFunds,
			},
			"history": {
				Flags: withMonths(map[string]complete.Predictor{"s": predict.Something}),
				Args:  predictFunds,
			},
			"links": {
				Flags: withMonths(map[string]complete.Predictor{}),
				Args:  predictFunds,
			},
			"topic": {
				Args: predict.Set(docs.Topics()),
			},
			"help": {},
		},
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.yaml"),
			"data":      predict.Dirs("*"),
			"threshold": predict.Something,
			"epsilon":   predict.Something,
			"scorer":    predict.Set{"ratio", "token_sort"},
			"plain":     predict.Nothing,
			"v":         predict.Nothing,
		},
	}
}
