package router

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
	"gorm.io/gorm"

	"github.com/cyb3r-cych0/resume-parser/internal/api/handler"
	"github.com/cyb3r-cych0/resume-parser/internal/config"
	"github.com/cyb3r-cych0/resume-parser/internal/parser"
)

// parseTextRequest 纯文本解析请求体
type parseTextRequest struct {
	Text string `json:"text"`
}

// RegisterRoutes 注册API路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config, parseHandler *handler.ParseHandler) {
	api := h.Group("/api/v1")

	if cfg.Auth.Enabled && len(cfg.Auth.APIKeys) > 0 {
		allowed := make(map[string]bool, len(cfg.Auth.APIKeys))
		for _, key := range cfg.Auth.APIKeys {
			allowed[key] = true
		}
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-Api-Key", ""),
			keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
				return allowed[key], nil
			}),
		))
	}

	api.POST("/resume/parse", func(c context.Context, ctx *app.RequestContext) {
		var req parseTextRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体必须是包含text字段的JSON"})
			return
		}

		resp, err := parseHandler.HandleParseText(c, req.Text)
		if err != nil {
			if errors.Is(err, handler.ErrEmptyInput) {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		async := ctx.PostForm("async") == "true"

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		resp, err := parseHandler.HandleParseFile(c, fileHeader.Filename, data, contentType, async)
		if err != nil {
			var ufe *parser.UnsupportedFormatError
			switch {
			case errors.As(err, &ufe):
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": ufe.Error()})
			case errors.Is(err, handler.ErrFileTooLarge):
				ctx.JSON(consts.StatusRequestEntityTooLarge, utils.H{"error": err.Error()})
			case errors.Is(err, handler.ErrEmptyInput):
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件中没有可解析的文本"})
			default:
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/records/:id", func(c context.Context, ctx *app.RequestContext) {
		recordID := ctx.Param("id")
		record, err := parseHandler.HandleGetRecord(c, recordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "解析记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})

	api.GET("/resume/records", func(c context.Context, ctx *app.RequestContext) {
		page, _ := strconv.Atoi(ctx.Query("page"))
		pageSize, _ := strconv.Atoi(ctx.Query("page_size"))

		resp, err := parseHandler.HandleListRecords(c, page, pageSize)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok", "version": cfg.Extractor.Version})
	})
}
