package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"eduforge/backend/dto"
	"eduforge/backend/storage"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNotFound = fiber.NewError(fiber.StatusNotFound, "Not found.")

// parseID reads the :id route parameter. A malformed id is reported the
// same way as an unknown one.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errNotFound
	}
	return uint(id), nil
}

func isPartial(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodPatch
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

type cleaner interface {
	Clean()
}

// decode overlays the body on in and normalises it. For partial updates in
// already holds the current values, so only the fields present in the body
// change.
func decode(c *fiber.Ctx, in interface{}) error {
	if len(c.Body()) > 0 || isMultipart(c) {
		if err := utils.ParseBody(c, in); err != nil {
			return err
		}
	}
	if cl, ok := in.(cleaner); ok {
		cl.Clean()
	}
	return nil
}

// bind is decode followed by validation.
func bind(c *fiber.Ctx, in interface{}) error {
	if err := decode(c, in); err != nil {
		return err
	}
	return utils.Validate(in)
}

// withFieldError adds field to a validation error, or starts a new one when
// err is nil. Other errors are returned unchanged.
func withFieldError(err error, field, message string) error {
	if err == nil {
		return utils.NewValidationError(field, message)
	}
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		verr.Add(field, message)
		return verr
	}
	return err
}

// ref is a foreign key supplied by the client.
type ref struct {
	field string
	model interface{}
	id    uint
}

// checkRefs reports every ref whose row does not exist. Zero ids are
// skipped; required-ness is validated separately.
func checkRefs(db *gorm.DB, refs ...ref) error {
	var verr *utils.ValidationError
	for _, r := range refs {
		if r.id == 0 {
			continue
		}
		var n int64
		if err := db.Model(r.model).Where("id = ?", r.id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			if verr == nil {
				verr = &utils.ValidationError{}
			}
			verr.Add(r.field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", r.id))
		}
	}
	if verr != nil {
		return verr
	}
	return nil
}

// exists reports whether any row of model matches the condition.
func exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	err := db.Model(model).Where(query, args...).Count(&n).Error
	return n > 0, err
}

// deleteByID removes one row; a missing row is a 404.
func deleteByID(db *gorm.DB, model interface{}, id uint) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func byLessonOrder(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).Order("id")
}

// formFile returns the uploaded file for field, or nil when the request
// carries none.
func formFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, "The submitted data was not a file.")
	}
	return fh, nil
}

// mediaURL makes stored object URLs absolute against the request host.
func mediaURL(c *fiber.Ctx, store storage.FileStore) dto.URLFunc {
	base := c.BaseURL()
	return func(name string) string {
		u := store.URL(name)
		if strings.HasPrefix(u, "/") {
			return base + u
		}
		return u
	}
}
