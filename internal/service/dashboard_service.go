package service

import (
	"time"

	"go-inventory-ledger/internal/aggregate"
	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
)

// Overview mirrors the dashboard payload: current totals plus the short
// low-stock and recent-movement slices the landing page renders.
type Overview struct {
	TotalProducts        int                       `json:"total_products"`
	TotalStockValue      int64                     `json:"total_stock_value"`
	LowStockCount        int                       `json:"low_stock_count"`
	OutOfStockCount      int                       `json:"out_of_stock_count"`
	TodayStockIn         int                       `json:"today_stock_in"`
	TodayStockOut        int                       `json:"today_stock_out"`
	LowStockItems        []model.ProductResponse   `json:"low_stock_items"`
	RecentTransactions   []model.Transaction       `json:"recent_transactions"`
	TopProducts          []model.ProductResponse   `json:"top_products"`
	CategoryDistribution []aggregate.CategoryCount `json:"category_distribution"`
}

// ReportSummary is a date-ranged movement report.
type ReportSummary struct {
	Range         string                  `json:"range"`
	StartDate     string                  `json:"start_date"`
	EndDate       string                  `json:"end_date"`
	TotalStockIn  int                     `json:"total_stock_in"`
	TotalStockOut int                     `json:"total_stock_out"`
	MovementCount int                     `json:"movement_count"`
	Days          []aggregate.DayMovement `json:"days"`
}

// DashboardService composes read-only derived views. This is the relaxed
// consistency path: the snapshot is assembled from several independent reads
// and may trail concurrent ledger writes, which is acceptable for display.
type DashboardService interface {
	GetOverview() (*Overview, error)
	GetSevenDayTrend() ([]aggregate.DayMovement, error)
	GetReportSummary(rangeParam string) (*ReportSummary, error)
}

type dashboardService struct {
	store repository.Store
}

func NewDashboardService(store repository.Store) DashboardService {
	return &dashboardService{store: store}
}

const (
	lowStockItemsLimit = 5
	recentTxLimit      = 10
	topProductsLimit   = 5
)

func (s *dashboardService) GetOverview() (*Overview, error) {
	products, err := s.store.Products().FindAll(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayTx, err := s.store.Transactions().FindBetween(dayStart, now)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.Transactions().FindRecent(recentTxLimit)
	if err != nil {
		return nil, err
	}

	todayIn, todayOut := aggregate.DailyMovementTotals(todayTx, now)

	low := aggregate.LowStock(products)
	lowItems := make([]model.ProductResponse, 0, lowStockItemsLimit)
	for i := range low {
		if i == lowStockItemsLimit {
			break
		}
		lowItems = append(lowItems, low[i].ToResponse())
	}

	top := aggregate.TopProductsByValue(products, topProductsLimit)
	topItems := make([]model.ProductResponse, 0, len(top))
	for i := range top {
		topItems = append(topItems, top[i].ToResponse())
	}

	return &Overview{
		TotalProducts:        aggregate.TotalActiveProducts(products),
		TotalStockValue:      aggregate.TotalStockValue(products),
		LowStockCount:        len(low),
		OutOfStockCount:      len(aggregate.OutOfStock(products)),
		TodayStockIn:         todayIn,
		TodayStockOut:        todayOut,
		LowStockItems:        lowItems,
		RecentTransactions:   recent,
		TopProducts:          topItems,
		CategoryDistribution: aggregate.CategoryDistribution(products),
	}, nil
}

func (s *dashboardService) GetSevenDayTrend() ([]aggregate.DayMovement, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	transactions, err := s.store.Transactions().FindBetween(start, now)
	if err != nil {
		return nil, err
	}
	return aggregate.SevenDayTrend(transactions, now), nil
}

func (s *dashboardService) GetReportSummary(rangeParam string) (*ReportSummary, error) {
	now := time.Now()
	var start time.Time
	switch rangeParam {
	case "", "7d":
		rangeParam = "7d"
		start = now.AddDate(0, 0, -7)
	case "1m":
		start = now.AddDate(0, -1, 0)
	case "3m":
		start = now.AddDate(0, -3, 0)
	case "6m":
		start = now.AddDate(0, -6, 0)
	case "12m":
		start = now.AddDate(0, -12, 0)
	default:
		return nil, apperr.InvalidArgumentf("unknown range %q, want one of 7d, 1m, 3m, 6m, 12m", rangeParam)
	}

	transactions, err := s.store.Transactions().FindBetween(start, now)
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{
		Range:         rangeParam,
		StartDate:     start.Format("2006-01-02"),
		EndDate:       now.Format("2006-01-02"),
		MovementCount: len(transactions),
		Days:          aggregate.MovementsByDay(transactions),
	}
	for _, tx := range transactions {
		switch tx.Type {
		case model.TxIn:
			summary.TotalStockIn += tx.Quantity
		case model.TxOut:
			summary.TotalStockOut += tx.Quantity
		}
	}
	return summary, nil
}
