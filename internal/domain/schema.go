package domain

import "time"

// The entities below are schema only: they belong to the planned automated
// drip-campaign subsystem tied to the rental lifecycle. No read/write logic
// in this service touches them beyond creating their tables.

type FunnelStep struct {
	ID          int64     `db:"id" json:"id"`
	FunnelID    int64     `db:"funnel_id" json:"funnelId"`
	StepOrder   int       `db:"step_order" json:"stepOrder"`
	MessageID   int64     `db:"message_id" json:"messageId"`
	Channel     Channel   `db:"channel" json:"channel"`
	DelayHours  int       `db:"delay_hours" json:"delayHours"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type Customer struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name" json:"lastName"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CustomerFunnelEnrollment struct {
	ID          int64      `db:"id" json:"id"`
	CustomerID  int64      `db:"customer_id" json:"customerId"`
	FunnelID    int64      `db:"funnel_id" json:"funnelId"`
	EnrolledAt  time.Time  `db:"enrolled_at" json:"enrolledAt"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}

type FunnelStepExecution struct {
	ID           int64      `db:"id" json:"id"`
	EnrollmentID int64      `db:"enrollment_id" json:"enrollmentId"`
	StepID       int64      `db:"step_id" json:"stepId"`
	ScheduledFor time.Time  `db:"scheduled_for" json:"scheduledFor"`
	ExecutedAt   *time.Time `db:"executed_at" json:"executedAt,omitempty"`
	Status       string     `db:"status" json:"status"`
}

type Equipment struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SKU       string    `db:"sku" json:"sku"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Rental struct {
	ID         int64      `db:"id" json:"id"`
	CustomerID int64      `db:"customer_id" json:"customerId"`
	StartDate  time.Time  `db:"start_date" json:"startDate"`
	EndDate    *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

type RentalItem struct {
	ID          int64 `db:"id" json:"id"`
	RentalID    int64 `db:"rental_id" json:"rentalId"`
	EquipmentID int64 `db:"equipment_id" json:"equipmentId"`
	Quantity    int   `db:"quantity" json:"quantity"`
}
