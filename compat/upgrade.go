package compat

import (
	"context"
	"fmt"
	"strings"

	"github.com/willibrandon/nugetcompat/observability"
)

// upgradeLattice maps each known moniker to the strictly newer frameworks
// reachable from it, ordered lowest to highest. Hand-maintained; monikers
// without an entry never produce a suggestion.
var upgradeLattice = map[string][]string{
	"net472":        {"net6.0", "net8.0"},
	"net48":         {"net6.0", "net8.0"},
	"netcoreapp3.1": {"net5.0", "net6.0", "net7.0", "net8.0"},
	"net5.0":        {"net6.0", "net7.0", "net8.0"},
	"net6.0":        {"net7.0", "net8.0"},
	"net7.0":        {"net8.0"},
	"net8.0":        {"net9.0", "net10.0"},
	"net9.0":        {"net10.0"},
}

// upgradeThreshold is the minimum fraction of references that must support
// a candidate framework before it is suggested.
const upgradeThreshold = 0.80

// SuggestFrameworkUpgrade recommends the highest framework in the upgrade
// lattice that a large majority of the references support. A reference
// supports a candidate when its verdict there is anything other than
// incompatible; a package that merely needs a version bump still runs.
//
// Candidates are scanned highest first. The first one every reference
// supports wins outright. Otherwise the candidate with the most supporting
// references is kept, ties going to the higher framework, and suggested
// only when its support fraction reaches the threshold.
//
// Each lattice cell runs a full compatibility check, so cold-cache calls
// may fan out many registry requests. Not a per-keystroke operation.
func (r *Resolver) SuggestFrameworkUpgrade(ctx context.Context, currentTfm string, refs []PackageReference) *UpgradeSuggestion {
	candidates, ok := upgradeLattice[strings.ToLower(currentTfm)]
	if !ok || len(refs) == 0 {
		observability.UpgradeScansTotal.WithLabelValues("none").Inc()
		return nil
	}

	var (
		bestCandidate  string
		bestSupporting []string
	)

	for i := len(candidates) - 1; i >= 0; i-- {
		candidate := candidates[i]
		var supporting []string
		for _, ref := range refs {
			issue := r.CheckCompatibility(ctx, ref.Name, ref.Version, candidate)
			if issue == nil || issue.Type != IssueIncompatible {
				supporting = append(supporting, ref.Name)
			}
		}

		if len(supporting) == len(refs) {
			observability.UpgradeScansTotal.WithLabelValues("suggested").Inc()
			return &UpgradeSuggestion{
				CurrentFramework:   currentTfm,
				SuggestedFramework: candidate,
				Reason:             fmt.Sprintf("All %d packages support %s.", len(refs), candidate),
				PackagesSupporting: supporting,
			}
		}

		if len(supporting) > len(bestSupporting) {
			bestCandidate = candidate
			bestSupporting = supporting
		}
	}

	if float64(len(bestSupporting))/float64(len(refs)) >= upgradeThreshold {
		observability.UpgradeScansTotal.WithLabelValues("suggested").Inc()
		return &UpgradeSuggestion{
			CurrentFramework:   currentTfm,
			SuggestedFramework: bestCandidate,
			Reason:             fmt.Sprintf("%d of %d packages support %s.", len(bestSupporting), len(refs), bestCandidate),
			PackagesSupporting: bestSupporting,
		}
	}

	observability.UpgradeScansTotal.WithLabelValues("none").Inc()
	return nil
}
