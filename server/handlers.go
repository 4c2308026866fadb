package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"boxLayout/errors"
	"boxLayout/layout"
	"boxLayout/models"
	"boxLayout/render"
	"boxLayout/utils"
)

// ====== 请求 / 响应结构 ======

type createRequest struct {
	Container      *models.Container `json:"container"`
	Box            *models.Size      `json:"box"`
	AutoPlace      *bool             `json:"autoPlace"`
	DetectOverlaps *bool             `json:"detectOverlaps"`
}

type stateResponse struct {
	ID         string             `json:"id"`
	Container  models.Container   `json:"container"`
	BoxSize    models.Size        `json:"boxSize"`
	Rotated    bool               `json:"rotated"`
	SelectedID int                `json:"selectedId"`
	Drag       layout.DragSession `json:"drag"`
	Options    layout.Options     `json:"options"`
	Boxes      []models.Box       `json:"boxes"`
}

type importFailure struct {
	Remark string `json:"remark"`
	Error  string `json:"error"`
}

type importResponse struct {
	Added  []models.Box    `json:"added"`
	Failed []importFailure `json:"failed"`
	State  stateResponse   `json:"state"`
}

func state(id string, e *layout.Editor) stateResponse {
	return stateResponse{
		ID:         id,
		Container:  e.Container(),
		BoxSize:    e.BoxSize(),
		Rotated:    e.Rotated(),
		SelectedID: e.SelectedID(),
		Drag:       e.DragSession(),
		Options:    e.Options(),
		Boxes:      e.Boxes(),
	}
}

// ====== 会话 ======

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.fail(c, errors.Wrap(errors.ErrCodeInvalidInput, err, "请求格式错误"))
			return
		}
	}

	cont, box, opts := s.cfg.Container, s.cfg.Box, s.cfg.Layout
	if req.Container != nil {
		cont = *req.Container
	}
	if req.Box != nil {
		box = *req.Box
	}
	if req.AutoPlace != nil {
		opts.AutoPlace = *req.AutoPlace
	}
	if req.DetectOverlaps != nil {
		opts.DetectOverlaps = *req.DetectOverlaps
	}
	if !cont.Valid() || !box.Valid() {
		s.fail(c, errors.New(errors.ErrCodeInvalidInput, "容器和箱子尺寸必须在 1 到 %d 之间", models.MaxDimension))
		return
	}

	sess := s.sessions.Create(layout.NewEditor(cont, box, opts))
	s.logger.Info("session created", "session", sess.id, "container", cont, "autoPlace", opts.AutoPlace)

	var resp stateResponse
	sess.do(func(e *layout.Editor) { resp = state(sess.id, e) })
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleGet(c *gin.Context) {
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		return http.StatusOK, state(id, e), nil
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if !s.sessions.Delete(id) {
		s.fail(c, errors.New(errors.ErrCodeSessionNotFound, "会话 %s 不存在", id))
		return
	}
	c.Status(http.StatusNoContent)
}

// withEditor 取出会话并在会话锁内执行 fn
func (s *Server) withEditor(c *gin.Context, fn func(id string, e *layout.Editor) (int, any, error)) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var (
		status int
		body   any
	)
	sess.do(func(e *layout.Editor) {
		status, body, err = fn(sess.id, e)
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(status, body)
}

// ====== 箱子 ======

func (s *Server) handleAddBox(c *gin.Context) {
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		box, err := e.AddBox()
		if err != nil {
			s.logger.Warn("box not placed", "session", id, "err", errors.UserMessage(err))
			return 0, nil, err
		}
		s.logger.Debug("box added", "session", id, "box", box.ID, "x", box.Position.X, "y", box.Position.Y)
		return http.StatusCreated, gin.H{"box": box, "state": state(id, e)}, nil
	})
}

func (s *Server) handleDeleteSelected(c *gin.Context) {
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		removed := e.DeleteSelected()
		return http.StatusOK, gin.H{"removed": removed, "state": state(id, e)}, nil
	})
}

func (s *Server) handleDeleteAllSelected(c *gin.Context) {
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		n := e.DeleteAllSelected()
		return http.StatusOK, gin.H{"removed": n, "state": state(id, e)}, nil
	})
}

func (s *Server) handlePointer(c *gin.Context) {
	var ev layout.PointerEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		s.fail(c, errors.Wrap(errors.ErrCodeInvalidInput, err, "事件格式错误"))
		return
	}
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		changed, err := e.Pointer(ev)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, gin.H{"changed": changed, "state": state(id, e)}, nil
	})
}

// ====== 尺寸表单 ======

func (s *Server) handleGlobalSize(c *gin.Context) {
	var form utils.SizeForm
	if err := c.ShouldBind(&form); err != nil {
		s.fail(c, errors.Wrap(errors.ErrCodeInvalidInput, err, "表单格式错误"))
		return
	}
	size, err := utils.ParseSizeForm(form, s.cfg.Scale)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		if err := e.SetGlobalSize(size); err != nil {
			return 0, nil, err
		}
		e.SetRotated(form.Rotated)
		return http.StatusOK, state(id, e), nil
	})
}

func (s *Server) handleContainerSize(c *gin.Context) {
	var form utils.ContainerForm
	if err := c.ShouldBind(&form); err != nil {
		s.fail(c, errors.Wrap(errors.ErrCodeInvalidInput, err, "表单格式错误"))
		return
	}
	cont, err := utils.ParseContainerForm(form)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		if err := e.SetContainerSize(cont); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, state(id, e), nil
	})
}

// ====== 导出 ======

func (s *Server) handlePayload(c *gin.Context) {
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		return http.StatusOK, e.Payload(), nil
	})
}

// handleSubmit 不等待提交结果
func (s *Server) handleSubmit(c *gin.Context) {
	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		payload := e.Payload()
		s.submitter.Send(payload)
		return http.StatusAccepted, gin.H{"queued": s.submitter.Enabled(), "index": payload.Index}, nil
	})
}

func (s *Server) handleChart(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var buf bytes.Buffer
	sess.do(func(e *layout.Editor) {
		err = render.Render(&buf, e.Boxes(), e.Container())
	})
	if err != nil {
		s.fail(c, errors.Wrap(errors.ErrCodeInternal, err, "绘制失败"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleExportExcel(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var buf bytes.Buffer
	sess.do(func(e *layout.Editor) {
		err = utils.WriteExcel(&buf, e.Boxes())
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="layout.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// handleImport 上传表格批量新增箱子，放不下的行记录在 failed 中
func (s *Server) handleImport(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.fail(c, errors.Wrap(errors.ErrCodeInvalidInput, err, "缺少上传文件"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		s.fail(c, errors.Wrap(errors.ErrCodeInvalidInput, err, "无法读取上传文件"))
		return
	}
	defer f.Close()

	column := c.DefaultPostForm("column", s.cfg.ImportColumn)
	specs, err := utils.ReadExcel(f, column, s.cfg.Scale)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.withEditor(c, func(id string, e *layout.Editor) (int, any, error) {
		resp := importResponse{Added: []models.Box{}, Failed: []importFailure{}}
		for _, spec := range specs {
			box, err := e.AddBoxSized(spec.Size, spec.Rotated)
			if err != nil {
				resp.Failed = append(resp.Failed, importFailure{Remark: spec.Remark, Error: errors.UserMessage(err)})
				continue
			}
			resp.Added = append(resp.Added, box)
		}
		s.logger.Info("spreadsheet imported", "session", id, "added", len(resp.Added), "failed", len(resp.Failed))
		resp.State = state(id, e)
		return http.StatusOK, resp, nil
	})
}
