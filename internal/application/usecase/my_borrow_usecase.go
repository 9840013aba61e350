package usecase

import (
	"context"
	"net/http"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/schema"
)

// MyBorrowUseCase préstamos del propio usuario. Siempre consulta la red.
type MyBorrowUseCase struct {
	deps   Deps
	tokens ports.TokenSource
	byUser *scoped[entity.Borrow]
}

func NewMyBorrowUseCase(d Deps, tokens ports.TokenSource) *MyBorrowUseCase {
	uc := &MyBorrowUseCase{deps: d, tokens: tokens}
	uc.byUser = newScoped(func(userID string) (*resource.Resource[entity.Borrow], func()) {
		res := resource.New(resource.Config[entity.Borrow]{
			Name:     "my_borrows",
			Policy:   resource.NetworkOnly,
			Guard:    func() (string, error) { return session.Require(tokens) },
			Request:  list("/borrow/borrows/" + segment(userID)),
			Field:    "borrows",
			Decode:   schema.Borrows,
			Fallback: "No se pudieron cargar tus préstamos.",
		}, d.resourceDeps())
		return res, res.Listen(d.Bus, invalidate.Borrow, userID)
	})
	return uc
}

// FetchAll carga los préstamos de userID.
func (uc *MyBorrowUseCase) FetchAll(ctx context.Context, userID string) resource.State[entity.Borrow] {
	return uc.byUser.get(userID).Fetch(ctx, true)
}

func (uc *MyBorrowUseCase) State(userID string) resource.State[entity.Borrow] {
	return uc.byUser.get(userID).Snapshot()
}

// Create solicita un préstamo. Sin AdminID se asigna un administrador al azar.
func (uc *MyBorrowUseCase) Create(ctx context.Context, in dto.CreateBorrowRequest) error {
	res := uc.byUser.get(in.UserID)
	return res.Mutate(ctx, "No se pudo crear el préstamo.", func(ctx context.Context, token string) error {
		if in.AdminID == "" {
			id, err := uc.RandomAdminID(ctx)
			if err != nil {
				return err
			}
			if id == "" {
				return domain.NewValidation(domain.CodeInvalidInput, "no hay administradores disponibles",
					[]domain.FieldError{{Path: "adminId", Reason: "requerido"}})
			}
			in.AdminID = id
		}
		return send(ctx, uc.deps.API, http.MethodPost, "/borrow", token, in)
	})
}

// RandomAdminID consulta /admin/users y devuelve el id de un ADMIN al azar, "" si no hay.
func (uc *MyBorrowUseCase) RandomAdminID(ctx context.Context) (string, error) {
	token, err := session.Require(uc.tokens)
	if err != nil {
		return "", err
	}
	env, err := uc.deps.API.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/admin/users", Token: token})
	if err != nil {
		return "", err
	}
	raw, ok := env.Field("users")
	if !ok {
		return "", nil
	}
	users, err := schema.Users(raw)
	if err != nil {
		return "", err
	}
	var admins []string
	for _, u := range users {
		if u.IsAdmin() {
			admins = append(admins, u.ID)
		}
	}
	if len(admins) == 0 {
		return "", nil
	}
	return admins[uc.deps.intn(len(admins))], nil
}

func (uc *MyBorrowUseCase) Close() { uc.byUser.close() }
