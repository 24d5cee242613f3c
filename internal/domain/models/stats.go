package models

// DashboardStats is the on-demand aggregate served to the dashboard.
// TodaySalesCount and TodayRevenue cover sales recorded since UTC midnight.
type DashboardStats struct {
	TotalProducts    int64     `json:"total_products"`
	TotalClients     int64     `json:"total_clients"`
	TotalSales       int64     `json:"total_sales"`
	TodaySalesCount  int       `json:"today_sales_count"`
	TodayRevenue     float64   `json:"today_revenue"`
	LowStockCount    int       `json:"low_stock_count"`
	LowStockProducts []Product `json:"low_stock_products"`
}
