package domain

// OrderStatistics aggregates order counts for the admin dashboard.
type OrderStatistics struct {
	TotalOrders int64
	ByStatus    map[OrderStatus]int64
	TodayOrders int64
	WeekOrders  int64
}
