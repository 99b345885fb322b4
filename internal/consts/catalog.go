package consts

const (
	// ImageURLPrefix 图片对外访问路径前缀，与静态文件路由一致
	ImageURLPrefix = "/images/"

	// NoImagePath 分类没有图片时使用的占位图
	NoImagePath = ImageURLPrefix + "noimage.jpg"
)

// 分类删除策略 (catalog.category_delete_policy)
const (
	// CategoryDeleteRestrict 分类下仍有商品时拒绝删除
	CategoryDeleteRestrict = "restrict"

	// CategoryDeleteCascade 连同商品及其图片一起删除
	CategoryDeleteCascade = "cascade"

	// CategoryDeleteOrphan 保留商品并解除关联；商品分类必填，不支持
	CategoryDeleteOrphan = "orphan"
)

// MaxUploadFilesPerRequest 单次商品请求允许携带的图片数上限，超出时返回校验错误；也用于推算请求体上限
const MaxUploadFilesPerRequest = 20
