package dto

// CreateMemberRequest registers a club member.
type CreateMemberRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	DNI       string  `json:"dni" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	PlanType  string  `json:"planType" validate:"required,oneof=INDIVIDUAL FAMILIAR"`
	FamilyID  *string `json:"familyId"`
}

// UpdateMemberRequest partially updates a member.
type UpdateMemberRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	PlanType  *string `json:"planType" validate:"omitempty,oneof=INDIVIDUAL FAMILIAR"`
	Status    *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE BLOCKED"`
	FamilyID  *string `json:"familyId"`
}

// CreateTrainerRequest registers a trainer.
type CreateTrainerRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	DNI       string  `json:"dni" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Sport     string  `json:"sport" validate:"required"`
}

// CreateFamilyRequest opens a family plan.
type CreateFamilyRequest struct {
	LastName string  `json:"lastName" validate:"required"`
	Discount float64 `json:"discount" validate:"gte=0,lte=1"`
}

// EnrollRequest signs a member up for a practice.
type EnrollRequest struct {
	MemberID   string `json:"memberId" validate:"required"`
	PracticeID string `json:"practiceId" validate:"required"`
}
