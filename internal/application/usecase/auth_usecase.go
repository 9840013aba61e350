package usecase

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/errmsg"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/schema"
	pkgjwt "github.com/Leavend/SMI-HIMPA-Client/pkg/jwt"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// AuthUseCase login, registro y recuperación de contraseña contra la API remota. Son las
// únicas llamadas anónimas.
type AuthUseCase struct {
	api    ports.APIClient
	holder *session.Holder
	log    *logger.Logger
}

func NewAuthUseCase(d Deps, holder *session.Holder) *AuthUseCase {
	return &AuthUseCase{api: d.API, holder: holder, log: d.Log.Component("auth")}
}

// Login autentica y guarda token y usuario en la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := schema.ValidateStruct(in); err != nil {
		return nil, failure(err, errmsg.InvalidInput)
	}
	env, err := uc.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/user/login", Body: in, Anonymous: true})
	if err != nil {
		return nil, failure(err, "No se pudo iniciar sesión.")
	}
	raw, ok := env.Field("token")
	var token string
	if ok {
		err = json.Unmarshal(raw, &token)
	}
	if !ok || err != nil || token == "" {
		return nil, failure(domain.NewValidation(domain.CodeInvalidData, "login sin token",
			[]domain.FieldError{{Path: "data.token", Reason: "requerido"}}), "No se pudo iniciar sesión.")
	}
	user, err := uc.loginUser(env, token)
	if err != nil {
		return nil, failure(err, "No se pudo iniciar sesión.")
	}
	uc.holder.Set(token, &user)
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("sesión iniciada")
	return &dto.LoginResponse{Token: token, User: user}, nil
}

// loginUser usa data.user si viene; si no, arma el usuario con los claims del token.
func (uc *AuthUseCase) loginUser(env *ports.Envelope, token string) (entity.User, error) {
	if raw, ok := env.Field("user"); ok {
		return schema.User(raw)
	}
	claims, err := pkgjwt.Decode(token)
	if err != nil {
		return entity.User{}, domain.NewPrecondition(domain.CodeInvalidToken, "token ilegible", err)
	}
	role := claims.Role
	if role != entity.RoleAdmin {
		role = entity.RoleBorrower
	}
	return entity.User{ID: claims.UserID, Username: claims.Username, Role: role}, nil
}

// Register crea una cuenta. La confirmación de contraseña se compara antes de cualquier I/O.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) error {
	if in.Password != in.ConfirmPassword {
		return failure(mismatch(), errmsg.PasswordMismatch)
	}
	return failure(uc.anonymous(ctx, "/user/register", in), "No se pudo completar el registro.")
}

// ForgotPassword solicita el código de recuperación.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	return failure(uc.anonymous(ctx, "/user/forgot-password", in), "No se pudo enviar el código.")
}

// ResetPassword cambia la contraseña con el código recibido.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if in.ConfirmPassword != "" && in.Password != in.ConfirmPassword {
		return failure(mismatch(), errmsg.PasswordMismatch)
	}
	return failure(uc.anonymous(ctx, "/user/reset-password", in), "No se pudo restablecer la contraseña.")
}

// Logout borra la sesión local.
func (uc *AuthUseCase) Logout() {
	uc.holder.Clear()
}

func (uc *AuthUseCase) anonymous(ctx context.Context, path string, body any) error {
	if err := schema.ValidateStruct(body); err != nil {
		return err
	}
	_, err := uc.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: path, Body: body, Anonymous: true})
	return err
}

func mismatch() error {
	return domain.NewValidation(domain.CodeInvalidInput, domain.ErrPasswordMismatch.Error(),
		[]domain.FieldError{{Path: "confirmPassword", Reason: "no coincide"}})
}
