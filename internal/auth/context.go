package auth

import "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"

// UserContext is attached to the request by the authenticated-user
// guard and read by downstream handlers. It carries the computed
// effective permission set so the permission guard performs no I/O.
type UserContext struct {
    ID          uint64          `json:"id"`
    Email       string          `json:"email"`
    Name        string          `json:"name"`
    Role        string          `json:"role"`
    Roles       []model.RoleRef `json:"roles"`
    Permissions []string        `json:"permissions"`
    IsActive    bool            `json:"isActive"`
    HotelID     uint64          `json:"hotelId"`
}

// AdminContext is the narrower context attached by the admin
// guard. Admin endpoints are gated by role membership alone, so
// there is deliberately no permission set here.
type AdminContext struct {
    ID       uint64          `json:"id"`
    Email    string          `json:"email"`
    Name     string          `json:"name"`
    Role     string          `json:"role"`
    Roles    []model.RoleRef `json:"roles"`
    IsActive bool            `json:"isActive"`
}
