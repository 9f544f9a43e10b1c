package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"lifeos/adapters/browserdump"
	"lifeos/adapters/excel"
	"lifeos/adapters/yamlio"
	"lifeos/domain/snapshot"
	"lifeos/internal/errors"
	"lifeos/ports"

	"github.com/gin-gonic/gin"
)

// maxImportBytes caps an uploaded snapshot
const maxImportBytes = 10 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportFilename(ext string) string {
	return fmt.Sprintf("lifeos-%s.%s", s.today(), ext)
}

// exportXLSX renders every record plus this week's insights as a workbook
func (s *Server) exportXLSX(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := s.svc.Transfer.Export(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	summary, err := s.svc.Insights.WeeklySummary(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.NewWriter(&summary).Write(&buf, snap); err != nil {
		s.respondError(c, errors.ExportFailed("xlsx", err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+s.exportFilename("xlsx")+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) exportYAML(c *gin.Context) {
	snap, err := s.svc.Transfer.Export(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := yamlio.Encode(&buf, snap); err != nil {
		s.respondError(c, errors.ExportFailed("yaml", err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+s.exportFilename("yaml")+`"`)
	c.Data(http.StatusOK, "application/yaml", buf.Bytes())
}

// importSnapshot merges an uploaded snapshot. The format comes from
// ?format=yaml|xlsx|csv|json, then the Content-Type, defaulting to yaml.
func (s *Server) importSnapshot(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var (
		snap *snapshot.Snapshot
		err  error
	)
	switch importFormat(c) {
	case "xlsx":
		snap, err = excel.ReadWorkbook(body)
	case "csv":
		snap, err = excel.ReadCSV(body)
	case "yaml":
		snap, err = yamlio.Decode(body)
	case "json":
		snap, err = browserdump.NewReader(s.svc.Location).Read(body)
	default:
		s.badRequest(c, "format must be yaml, xlsx, csv or json")
		return
	}
	if err != nil {
		s.respondError(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}

	counts, err := s.svc.Transfer.Import(c.Request.Context(), snap)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventSnapshotImported, map[string]interface{}{"counts": counts})
	c.JSON(http.StatusOK, gin.H{"imported": counts})
}

func importFormat(c *gin.Context) string {
	if format := strings.ToLower(c.Query("format")); format != "" {
		return format
	}
	contentType := c.ContentType()
	switch {
	case contentType == xlsxContentType:
		return "xlsx"
	case strings.Contains(contentType, "csv"):
		return "csv"
	case contentType == "application/json":
		return "json"
	}
	return "yaml"
}
