package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sei_backend/internals/configs"
	"sei_backend/internals/constants"
	"sei_backend/internals/features/users/auth/dto"
	authRepo "sei_backend/internals/features/users/auth/repository"
	userModel "sei_backend/internals/features/users/user/model"
	helper "sei_backend/internals/helpers"
	helperAuth "sei_backend/internals/helpers/auth"
)

var errSetupDone = errors.New("setup already completed")

/* ==========================
   SETUP
========================== */

// GET /api/auth/setup-status
func SetupStatus(db *gorm.DB, c *fiber.Ctx) error {
	n, err := authRepo.CountUsers(c.UserContext(), db)
	if err != nil {
		log.Printf("[ERROR] count users: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check setup status")
	}
	return c.JSON(fiber.Map{"needsSetup": n == 0})
}

// POST /api/auth/setup-admin creates the first admin_ti account. Only allowed
// while the users table is empty.
func SetupAdmin(db *gorm.DB, c *fiber.Ctx) error {
	var in dto.SetupAdminRequest
	if err := helper.BindAndValidate(c, &in); err != nil {
		return err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		Email:    in.Email,
		Password: hashed,
		Name:     strings.TrimSpace(in.Name),
		Role:     constants.RoleAdminTI,
	}

	err = db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		n, err := authRepo.CountUsers(c.UserContext(), tx)
		if err != nil {
			return err
		}
		if n > 0 {
			return errSetupDone
		}
		return authRepo.CreateUser(c.UserContext(), tx, &user)
	})
	if errors.Is(err, errSetupDone) {
		return helper.JsonError(c, fiber.StatusForbidden, "Setup already completed")
	}
	if err != nil {
		log.Printf("[ERROR] setup admin: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Setup failed")
	}

	log.Printf("[INFO] setup completed for %s", user.Email)
	return issueAndRespond(c, user, fiber.StatusOK)
}

/* ==========================
   REGISTER (by an admin)
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := helper.BindAndValidate(c, &in); err != nil {
		return err
	}

	role := constants.RoleGuest
	if strings.TrimSpace(in.Role) != "" {
		r, err := constants.ParseRole(in.Role)
		if err != nil {
			return helper.FieldErrors{"role": {"must be one of admin_ti admin_dir coord prof sec guest"}}
		}
		role = r
	}

	if _, err := authRepo.FindUserByEmail(c.UserContext(), db, in.Email); err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		Email:    in.Email,
		Password: hashed,
		Name:     strings.TrimSpace(in.Name),
		Role:     role,
	}
	if err := authRepo.CreateUser(c.UserContext(), db, &user); err != nil {
		log.Printf("[ERROR] register: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Registration failed")
	}

	return issueAndRespond(c, user, fiber.StatusCreated)
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := helper.BindAndValidate(c, &in); err != nil {
		return err
	}

	user, err := authRepo.FindUserByEmail(c.UserContext(), db, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}
	if err := CheckPasswordHash(user.Password, in.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return issueAndRespond(c, *user, fiber.StatusOK)
}

func issueAndRespond(c *fiber.Ctx, user userModel.UserModel, status int) error {
	token, _, err := IssueAccessToken(user, time.Now())
	if err != nil {
		log.Printf("[ERROR] issue token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return c.Status(status).JSON(dto.AuthResponse{User: user, Token: token})
}

/* ==========================
   SESSION
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(c.UserContext(), db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func UpdatePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	var in dto.UpdatePasswordRequest
	if err := helper.BindAndValidate(c, &in); err != nil {
		return err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(c.UserContext(), db, userID, hashed); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Password updated", nil)
}

// Logout blacklists the presented access token until it expires.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)
	exp, ok := c.Locals(helperAuth.LocTokenExp).(time.Time)
	if !ok || exp.IsZero() {
		exp = time.Now().Add(tokenTTL())
	}

	if err := authRepo.BlacklistToken(c.UserContext(), db, raw, configs.JWTSecret, exp); err != nil {
		log.Printf("[WARN] failed to blacklist token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}
	return helper.JsonOK(c, "Logout successful", nil)
}
