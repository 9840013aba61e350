package usecase_test

import (
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

func dtoCreateInventory(name string, qty int64, condition string) dto.CreateInventoryRequest {
	return dto.CreateInventoryRequest{Name: name, Quantity: qty, Condition: condition, Code: "C-" + name}
}

func dtoUpdateInventory(name *string, qty *int64) dto.UpdateInventoryRequest {
	return dto.UpdateInventoryRequest{Name: name, Quantity: qty}
}

func dtoConfirm(id, status string) dto.ConfirmBorrowRequest {
	return dto.ConfirmBorrowRequest{BorrowID: id, Status: entity.BorrowStatus(status)}
}

func dtoClearDateReturn() dto.UpdateBorrowRequest {
	return dto.UpdateBorrowRequest{ClearDateReturn: true}
}

func dtoCreateBorrow(userID, adminID string) dto.CreateBorrowRequest {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	return dto.CreateBorrowRequest{
		UserID:      userID,
		AdminID:     adminID,
		InventoryID: "5b8f0e5c-1e39-4f4e-9a53-0f3f3c6b1a03",
		Quantity:    1,
		DateBorrow:  start,
		DateReturn:  start.Add(72 * time.Hour),
	}
}

func dtoLogin(username, password string) dto.LoginRequest {
	return dto.LoginRequest{Username: username, Password: password}
}

func dtoRegister(password, confirm string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "budi", Email: "budi@himpa.id", Number: "0812",
		Password: password, ConfirmPassword: confirm,
	}
}
