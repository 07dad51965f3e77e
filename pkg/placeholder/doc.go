// Package placeholder 提供字符串占位符替换引擎。
//
// 占位符由可配置的前缀/后缀界定（通常为 ${ 与 }），
// 内部名称交给调用方提供的 [Resolver] 解析，结果回填到原文本中。
//
// # 语义说明
//
//  1. 支持嵌套：名称中的占位符（${${x}}）与解析值中的占位符都会递归展开
//  2. 可选默认值分隔符：${name:default}，名称无法解析时回退到 default
//  3. 循环引用检测：同一占位符文本在自身解析链上再次出现时返回 [CircularReferenceError]
//  4. 无法解析的占位符默认原样保留；严格模式下返回 [UnresolvableError]
//  5. 未闭合的占位符不是错误，剩余文本原样输出
//
// # 快速开始
//
//	h, err := placeholder.New("${", "}", placeholder.WithValueSeparator(":"))
//	out, err := h.ReplaceProperties("host=${HOST:localhost}", map[string]string{})
//	// out == "host=localhost"
//
// 组合多个数据源：
//
//	r := placeholder.ChainResolver{
//	    placeholder.MapResolver(props),
//	    placeholder.EnvResolver(),
//	}
//	out, err := h.Replace(text, r)
//
// [Helper] 创建后不可变，可在多个 goroutine 间共享；
// 每次 [Helper.Replace] 调用使用独立的解析状态。
//
// 默认不限制嵌套层数与结果大小。处理不可信输入时应通过 [WithMaxDepth]、
// [WithMaxResolutions] 与 [WithMaxLength] 设置上限，超出时返回 [LimitExceededError]。
package placeholder
