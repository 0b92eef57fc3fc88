package reconcile

import (
	"github.com/Rannielson/analisefinanceiro/internal/domain/auditor"
	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
	"github.com/Rannielson/analisefinanceiro/internal/domain/normalize"
)

// RecordView is the snapshot of a record carried inside results. The
// JSON names are the wire format the existing frontend consumes.
type RecordView struct {
	Supplier   string  `json:"fornecedor"`
	Amount     float64 `json:"valor"`
	Date       string  `json:"data"`
	CostCenter string  `json:"centro_custo"`
	Department string  `json:"departamento"`
}

func viewOf(rec ledger.Record) RecordView {
	return RecordView{
		Supplier:   rec.Supplier,
		Amount:     normalize.Round2(rec.Amount),
		Date:       rec.DateDisplay,
		CostCenter: rec.CostCenter,
		Department: rec.Department,
	}
}

// ResultItem is one entry of the combined result list: a match
// outcome or a missing-info alert.
type ResultItem struct {
	Status     string      `json:"status"`
	Reference  RecordView  `json:"referencia"`
	Comparison *RecordView `json:"comparacao"`
	NameScore  *float64    `json:"score_nome"`
	AmountDiff *float64    `json:"diferenca_valor"`
	Alert      string      `json:"alerta"`
}

// Summary carries the overall tallies for one analysis.
type Summary struct {
	TotalReference   int `json:"total_referencia"`
	TotalComparison  int `json:"total_comparacao"`
	ConfirmedMatches int `json:"matches_confirmados"`
	Divergent        int `json:"divergentes"`
	NotFound         int `json:"nao_encontrados"`
	MissingInfo      int `json:"info_faltante"`
	TotalDailyAlerts int `json:"total_alertas_diarios"`
}

// DayGroupView is a per-day aggregate with its bound result items.
type DayGroupView struct {
	Date      string       `json:"data"`
	RefCount  int          `json:"qtd_ref"`
	CompCount int          `json:"qtd_comp"`
	RefTotal  float64      `json:"total_ref"`
	CompTotal float64      `json:"total_comp"`
	Divergent bool         `json:"divergente"`
	Results   []ResultItem `json:"resultados"`
}

// Analysis is one matcher policy's complete view: summary, flat
// results and per-day bindings.
type Analysis struct {
	Summary Summary        `json:"resumo"`
	Results []ResultItem   `json:"resultados"`
	ByDay   []DayGroupView `json:"por_data"`
}

// Report is the full reconciliation output. The top-level fields come
// from the value+date analysis; CostCenter holds the parallel
// value+date+cost-center analysis over the same day-group skeleton.
type Report struct {
	Summary     Summary              `json:"resumo"`
	Results     []ResultItem         `json:"resultados"`
	DailyAlerts []auditor.DailyAlert `json:"alertas_diarios"`
	ByDay       []DayGroupView       `json:"por_data"`
	CostCenter  Analysis             `json:"analise_centro_custo"`
}
