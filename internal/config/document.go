package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/iwvelando/nav-landing/pkg/format"
	"github.com/iwvelando/nav-landing/pkg/mathutil"
	"github.com/iwvelando/nav-landing/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Document keys
const (
	keyFundName     = "nom_fonds"
	keyScenarioName = "nom_scenario"
	keyKnownNAVDate = "date_vl_connue"
	keyFundEndDate  = "date_fin_fonds"
	keyKnownNAV     = "anr_derniere_vl"
	keyShareCount   = "nombre_parts"
	keyImpacts      = "impacts"
	keyDatedImpacts = "impacts_multidates"
	keyAssets       = "actifs"
)

// Document is the JSON exchange format of a parameter set. Amounts are kept
// raw because they may arrive as numbers or as localized strings; Normalize
// resolves them.
type Document struct {
	FundName     string                `json:"nom_fonds"`
	ScenarioName string                `json:"nom_scenario,omitempty"`
	KnownNAVDate string                `json:"date_vl_connue"`
	FundEndDate  string                `json:"date_fin_fonds"`
	KnownNAV     json.RawMessage       `json:"anr_derniere_vl"`
	ShareCount   json.RawMessage       `json:"nombre_parts"`
	Impacts      []json.RawMessage     `json:"impacts"`
	DatedImpacts []DatedImpactDocument `json:"impacts_multidates"`
	Assets       []AssetDocument       `json:"actifs"`
}

// DatedImpactDocument is the wire form of a DatedImpact.
type DatedImpactDocument struct {
	Label   string               `json:"libelle"`
	Amounts []OccurrenceDocument `json:"montants"`
}

// OccurrenceDocument is the wire form of an Occurrence.
type OccurrenceDocument struct {
	Date   string          `json:"date"`
	Amount json.RawMessage `json:"montant"`
}

// AssetDocument is the wire form of an Asset. Older documents may carry a
// stored "variation" key; it is ignored since variations are derived.
type AssetDocument struct {
	Name           string          `json:"nom"`
	Ownership      json.RawMessage `json:"pct_detention"`
	CurrentValue   json.RawMessage `json:"valeur_actuelle"`
	ProjectedValue json.RawMessage `json:"valeur_projetee"`
	TaxProvision   json.RawMessage `json:"is_a_provisionner,omitempty"`
}

type impactObject struct {
	Libelle string          `json:"libelle"`
	Label   string          `json:"label"`
	Montant json.RawMessage `json:"montant"`
	Amount  json.RawMessage `json:"amount"`
}

// DecodeDocument reads one JSON parameter document from r.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", validation.ErrMalformedDocument, err)
	}
	return doc, nil
}

// DecodeParameters reads and normalizes a parameter document.
func DecodeParameters(logger *zap.Logger, r io.Reader) (FundParameters, []string, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return FundParameters{}, nil, err
	}
	return doc.Normalize(logger)
}

// LoadParameters reads and normalizes the parameter document at path.
func LoadParameters(logger *zap.Logger, path string) (FundParameters, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FundParameters{}, nil, fmt.Errorf("failed to read parameters at %s: %w", path, err)
	}
	return DecodeParameters(logger, bytes.NewReader(data))
}

// normalizer collects the substitutions made while normalizing a document.
type normalizer struct {
	logger  *zap.Logger
	notices []string
	errs    []error
}

func (n *normalizer) fallback(field, msg string) {
	notice := fmt.Sprintf("%s: %s", field, msg)
	n.logger.Warn("parameter defaulted",
		zap.String("op", "config.Normalize"),
		zap.String("field", field),
		zap.String("detail", msg),
	)
	n.notices = append(n.notices, notice)
}

func (n *normalizer) fail(field, value string, err error) {
	n.errs = append(n.errs, validation.NewFieldError(field, value, err))
}

// Normalize turns the document into FundParameters. Top-level problems
// (dates, NAV, share count) are input errors and abort normalization; a
// malformed amount inside an asset or impact is replaced by a neutral value,
// logged, and reported in the returned notices.
func (doc Document) Normalize(logger *zap.Logger) (FundParameters, []string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &normalizer{logger: logger}

	params := FundParameters{
		FundName:     strings.TrimSpace(doc.FundName),
		ScenarioName: strings.TrimSpace(doc.ScenarioName),
	}
	if params.ScenarioName == "" {
		params.ScenarioName = constants.DefaultScenarioName
	}

	params.KnownNAVDate = n.requireDate(keyKnownNAVDate, doc.KnownNAVDate)
	params.FundEndDate = n.requireDate(keyFundEndDate, doc.FundEndDate)
	if !params.KnownNAVDate.IsZero() && !params.FundEndDate.IsZero() && params.FundEndDate.Before(params.KnownNAVDate) {
		n.fail(keyFundEndDate, doc.FundEndDate, validation.ErrEndBeforeStart)
	}

	params.KnownNAV = n.requireAmount(keyKnownNAV, doc.KnownNAV)
	if shareCount, ok := n.requireAmountOK(keyShareCount, doc.ShareCount); ok {
		if !shareCount.IsPositive() {
			n.fail(keyShareCount, rawString(doc.ShareCount), validation.ErrNonPositiveShareCount)
		}
		params.ShareCount = shareCount
	}

	params.RecurringImpacts = make([]RecurringImpact, 0, len(doc.Impacts))
	for i, raw := range doc.Impacts {
		params.RecurringImpacts = append(params.RecurringImpacts, n.recurringImpact(i, raw))
	}

	params.DatedImpacts = make([]DatedImpact, 0, len(doc.DatedImpacts))
	for i, impact := range doc.DatedImpacts {
		params.DatedImpacts = append(params.DatedImpacts, n.datedImpact(i, impact))
	}

	params.Assets = make([]Asset, 0, len(doc.Assets))
	for i, asset := range doc.Assets {
		params.Assets = append(params.Assets, n.asset(i, asset))
	}

	if len(n.errs) > 0 {
		return FundParameters{}, n.notices, errors.Join(n.errs...)
	}
	return params, n.notices, nil
}

func (n *normalizer) requireDate(field, value string) time.Time {
	date, err := datetime.ParseDate(value)
	if err != nil {
		n.fail(field, value, validation.ErrInvalidDate)
		return time.Time{}
	}
	return date
}

func (n *normalizer) requireAmount(field string, raw json.RawMessage) decimal.Decimal {
	amount, _ := n.requireAmountOK(field, raw)
	return amount
}

func (n *normalizer) requireAmountOK(field string, raw json.RawMessage) (decimal.Decimal, bool) {
	amount, present, err := parseAmount(raw)
	if err != nil || !present {
		n.fail(field, rawString(raw), validation.ErrInvalidAmount)
		return decimal.Zero, false
	}
	return amount, true
}

// optionalAmount resolves a nested amount, defaulting to zero.
func (n *normalizer) optionalAmount(field string, raw json.RawMessage) decimal.Decimal {
	amount, present, err := parseAmount(raw)
	switch {
	case err != nil:
		n.fallback(field, fmt.Sprintf("unreadable amount %s replaced by 0", rawString(raw)))
		return decimal.Zero
	case !present:
		n.fallback(field, "missing amount replaced by 0")
		return decimal.Zero
	}
	return amount
}

func (n *normalizer) recurringImpact(index int, raw json.RawMessage) RecurringImpact {
	field := fmt.Sprintf("%s[%d]", keyImpacts, index)
	impact := RecurringImpact{Label: defaultImpactLabel(index)}

	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var pair []json.RawMessage
		if err := json.Unmarshal(trimmed, &pair); err != nil || len(pair) != 2 {
			n.fallback(field, "expected a [label, amount] pair, impact set to 0")
			impact.Amount = decimal.Zero
			return impact
		}
		var label string
		if err := json.Unmarshal(pair[0], &label); err == nil && strings.TrimSpace(label) != "" {
			impact.Label = strings.TrimSpace(label)
		} else {
			n.fallback(field, "missing label replaced by "+impact.Label)
		}
		impact.Amount = n.optionalAmount(field, pair[1])
	case len(trimmed) > 0 && trimmed[0] == '{':
		var obj impactObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			n.fallback(field, "unreadable impact object, impact set to 0")
			impact.Amount = decimal.Zero
			return impact
		}
		if label := strings.TrimSpace(firstNonEmpty(obj.Libelle, obj.Label)); label != "" {
			impact.Label = label
		} else {
			n.fallback(field, "missing label replaced by "+impact.Label)
		}
		amount := obj.Montant
		if len(amount) == 0 {
			amount = obj.Amount
		}
		impact.Amount = n.optionalAmount(field, amount)
	default:
		n.fallback(field, "unrecognized impact, impact set to 0")
		impact.Amount = decimal.Zero
	}
	return impact
}

func (n *normalizer) datedImpact(index int, doc DatedImpactDocument) DatedImpact {
	field := fmt.Sprintf("%s[%d]", keyDatedImpacts, index)
	impact := DatedImpact{
		Label:       strings.TrimSpace(doc.Label),
		Occurrences: make([]Occurrence, 0, len(doc.Amounts)),
	}
	if impact.Label == "" {
		impact.Label = defaultImpactLabel(index)
		n.fallback(field, "missing label replaced by "+impact.Label)
	}

	for j, occurrence := range doc.Amounts {
		occurrenceField := fmt.Sprintf("%s.montants[%d]", field, j)
		date, err := datetime.ParseDate(occurrence.Date)
		if err != nil {
			n.fail(occurrenceField+".date", occurrence.Date, validation.ErrInvalidDate)
			continue
		}
		impact.Occurrences = append(impact.Occurrences, Occurrence{
			Date:   date,
			Amount: n.optionalAmount(occurrenceField+".montant", occurrence.Amount),
		})
	}
	return impact
}

func (n *normalizer) asset(index int, doc AssetDocument) Asset {
	field := fmt.Sprintf("%s[%d]", keyAssets, index)
	asset := Asset{Name: strings.TrimSpace(doc.Name)}
	if asset.Name == "" {
		asset.Name = fmt.Sprintf("Actif %d", index+1)
		n.fallback(field+".nom", "missing name replaced by "+asset.Name)
	}

	ownership, present, err := parseOwnership(doc.Ownership)
	switch {
	case err != nil:
		n.fallback(field+".pct_detention", fmt.Sprintf("unreadable ownership %s replaced by 0", rawString(doc.Ownership)))
	case !present:
		n.fallback(field+".pct_detention", "missing ownership replaced by 0")
	default:
		clamped := mathutil.Clamp(ownership, decimal.Zero, decimal.NewFromInt(1))
		if !clamped.Equal(ownership) {
			n.fallback(field+".pct_detention", fmt.Sprintf("ownership %s clamped to %s", ownership, clamped))
		}
		asset.Ownership = clamped
	}

	asset.CurrentValue = n.optionalAmount(field+".valeur_actuelle", doc.CurrentValue)
	asset.ProjectedValue = n.optionalAmount(field+".valeur_projetee", doc.ProjectedValue)

	provision, err := parseFlag(doc.TaxProvision)
	if err != nil {
		n.fallback(field+".is_a_provisionner", fmt.Sprintf("unreadable flag %s replaced by false", rawString(doc.TaxProvision)))
	}
	asset.TaxProvision = provision

	return asset
}

func defaultImpactLabel(index int) string {
	return fmt.Sprintf("Impact %d", index+1)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func rawString(raw json.RawMessage) string {
	return strings.Trim(string(bytes.TrimSpace(raw)), `"`)
}

// parseAmount accepts a JSON number or a localized amount string.
func parseAmount(raw json.RawMessage) (decimal.Decimal, bool, error) {
	if isNull(raw) {
		return decimal.Zero, false, nil
	}
	trimmed := bytes.TrimSpace(raw)

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return decimal.Zero, true, err
		}
		amount, err := format.ParseEuro(s)
		if errors.Is(err, format.ErrEmptyAmount) {
			return decimal.Zero, false, nil
		}
		return amount, true, err
	}

	amount, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return decimal.Zero, true, fmt.Errorf("not a number: %s", trimmed)
	}
	return amount, true, nil
}

// parseOwnership accepts a fraction, or a string percentage such as "40 %".
func parseOwnership(raw json.RawMessage) (decimal.Decimal, bool, error) {
	if isNull(raw) {
		return decimal.Zero, false, nil
	}
	var s string
	if err := json.Unmarshal(bytes.TrimSpace(raw), &s); err == nil && strings.HasSuffix(strings.TrimSpace(s), "%") {
		percent, err := format.ParseEuro(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if err != nil {
			return decimal.Zero, true, err
		}
		return percent.Div(decimal.NewFromInt(100)), true, nil
	}
	return parseAmount(raw)
}

// parseFlag accepts booleans, common yes/no strings, and numbers.
func parseFlag(raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	trimmed := bytes.TrimSpace(raw)

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		return b, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "oui", "yes", "vrai":
			return true, nil
		case "non", "no", "faux", "":
			return false, nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return false, fmt.Errorf("not a flag: %q", s)
		}
		return parsed, nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("not a flag: %s", trimmed)
}
