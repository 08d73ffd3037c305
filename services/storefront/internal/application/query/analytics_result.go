package query

import "storefront/services/storefront/internal/domain/entities"

type FunnelStage struct {
	Stage              entities.EventType `json:"stage"`
	Label              string             `json:"label"`
	UniqueUsers        int64              `json:"uniqueUsers"`
	UniqueSessions     int64              `json:"uniqueSessions"`
	TotalEvents        int64              `json:"totalEvents"`
	DropOffRate        float64            `json:"dropOffRate"`
	ConversionFromPrev float64            `json:"conversionFromPrev"`
}

type FunnelResult struct {
	Funnel                       []FunnelStage `json:"funnel"`
	OverallConversionRate        float64       `json:"overallConversionRate"`
	OverallSessionConversionRate float64       `json:"overallSessionConversionRate"`
}

type RevenueSummary struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int64   `json:"totalOrders"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	UniqueCustomers int64   `json:"uniqueCustomers"`
}

type RevenuePoint struct {
	Period          string  `json:"period"`
	Revenue         float64 `json:"revenue"`
	OrderCount      int64   `json:"orderCount"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	UniqueCustomers int64   `json:"uniqueCustomers"`
}

type RevenueResult struct {
	Summary    RevenueSummary `json:"summary"`
	TimeSeries []RevenuePoint `json:"timeSeries"`
}

type ChannelAttribution struct {
	Channel           entities.Channel `json:"channel"`
	Sessions          int64            `json:"sessions"`
	PageViews         int64            `json:"pageViews"`
	Orders            int64            `json:"orders"`
	Revenue           float64          `json:"revenue"`
	AvgOrderValue     float64          `json:"avgOrderValue"`
	UniqueCustomers   int64            `json:"uniqueCustomers"`
	ConversionRate    float64          `json:"conversionRate"`
	RevenuePerSession float64          `json:"revenuePerSession"`
}

type AttributionTotals struct {
	Sessions          int64   `json:"sessions"`
	PageViews         int64   `json:"pageViews"`
	Orders            int64   `json:"orders"`
	Revenue           float64 `json:"revenue"`
	ConversionRate    float64 `json:"conversionRate"`
	RevenuePerSession float64 `json:"revenuePerSession"`
}

type AttributionResult struct {
	Attribution []ChannelAttribution `json:"attribution"`
	Totals      AttributionTotals    `json:"totals"`
}

type CohortActivity struct {
	Month             string  `json:"month"`
	MonthsSinceSignup int     `json:"monthsSinceSignup"`
	Revenue           float64 `json:"revenue"`
	Orders            int64   `json:"orders"`
	ActiveUsers       int64   `json:"activeUsers"`
	RetentionRate     float64 `json:"retentionRate"`
}

type Cohort struct {
	CohortMonth string           `json:"cohortMonth"`
	TotalUsers  int64            `json:"totalUsers"`
	Activity    []CohortActivity `json:"activity"`
}

type CohortResult struct {
	Cohorts []Cohort `json:"cohorts"`
}

type CategoryPerformance struct {
	Category           entities.Category `json:"category"`
	ProductCount       int64             `json:"productCount"`
	TotalViews         int64             `json:"totalViews"`
	TotalAddToCarts    int64             `json:"totalAddToCarts"`
	TotalPurchases     int64             `json:"totalPurchases"`
	AvgPrice           float64           `json:"avgPrice"`
	TotalRevenue       float64           `json:"totalRevenue"`
	ViewToCartRate     float64           `json:"viewToCartRate"`
	CartToPurchaseRate float64           `json:"cartToPurchaseRate"`
}

type CategoryResult struct {
	Categories []CategoryPerformance `json:"categories"`
}

type DashboardKPIs struct {
	TodayOrders       int64   `json:"todayOrders"`
	Last30DaysRevenue float64 `json:"last30DaysRevenue"`
	Last30DaysOrders  int64   `json:"last30DaysOrders"`
	AvgOrderValue     float64 `json:"avgOrderValue"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	TotalCustomers    int64   `json:"totalCustomers"`
	Last30DaysEvents  int64   `json:"last30DaysEvents"`
}

type TopProduct struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Category       entities.Category `json:"category"`
	Price          float64           `json:"price"`
	PurchaseCount  int64             `json:"purchaseCount"`
	ViewCount      int64             `json:"viewCount"`
	ConversionRate float64           `json:"conversionRate"`
}

type DashboardResult struct {
	KPIs        DashboardKPIs `json:"kpis"`
	TopProducts []TopProduct  `json:"topProducts"`
}
