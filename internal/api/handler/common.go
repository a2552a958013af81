package handler

import (
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentIdentity 组装当前请求的身份：登录用户或匿名设备
func currentIdentity(c *gin.Context) service.Identity {
	return service.Identity{
		UserID:   c.GetUint64("user_id"),
		DeviceID: c.GetString("device_id"),
	}
}

// isAdmin 判断当前登录用户是否具有管理员角色
func isAdmin(c *gin.Context) bool {
	for _, role := range c.GetStringSlice("roles") {
		if role == "ADMIN" {
			return true
		}
	}
	return false
}

// parseIDParam 解析路径上的数字 ID
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// pageQuery 解析分页参数，越界值交由服务层归一化
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
