package extract

// Signature maps a technology label to literal substrings found in page markup.
type Signature struct {
	Label  string
	Needle []string
}

var technologies = []Signature{
	{Label: "React", Needle: []string{"react.js", "react-dom", "data-reactroot"}},
	{Label: "Angular", Needle: []string{"angular.js", "ng-app"}},
	{Label: "Vue.js", Needle: []string{"vue.js", "data-v-app"}},
	{Label: "jQuery", Needle: []string{"jquery.js", "jquery.min.js"}},
	{Label: "Shopify", Needle: []string{"shopify.com", "cdn.shopify.com"}},
	{Label: "WooCommerce", Needle: []string{"woocommerce"}},
	{Label: "Magento", Needle: []string{"magento"}},
	{Label: "BigCommerce", Needle: []string{"bigcommerce"}},
	{Label: "WordPress", Needle: []string{"wp-content", "wp-json"}},
	{Label: "Drupal", Needle: []string{"drupal.js", "sites/default"}},
	{Label: "Joomla", Needle: []string{"joomla"}},
	{Label: "Contentful", Needle: []string{"contentful"}},
	{Label: "Sanity", Needle: []string{"sanity.io"}},
	{Label: "Google Analytics", Needle: []string{"google-analytics.com/analytics.js", "gtag("}},
	{Label: "HubSpot", Needle: []string{"js.hs-scripts.com", "_hsq.push"}},
	{Label: "Marketo", Needle: []string{"munchkin.js"}},
	{Label: "Segment", Needle: []string{"cdn.segment.com"}},
	{Label: "Hotjar", Needle: []string{"hotjar.com", "hj("}},
	{Label: "Google Tag Manager", Needle: []string{"googletagmanager.com/gtm.js"}},
	{Label: "Node.js", Needle: []string{"node.js"}},
	{Label: "PHP", Needle: []string{".php"}},
	{Label: "ASP.NET", Needle: []string{".aspx"}},
	{Label: "Stripe", Needle: []string{"js.stripe.com"}},
	{Label: "Braintree", Needle: []string{"js.braintreegateway.com"}},
	{Label: "Zendesk", Needle: []string{"zendesk.com"}},
	{Label: "Intercom", Needle: []string{"intercom.io", "widget.intercom.io"}},
}

// teamTiers is checked in order when no explicit headcount phrase is present.
var teamTiers = []Category{
	{Label: "1-10", Keywords: []string{"1-10", "small team", "startup team"}},
	{Label: "11-50", Keywords: []string{"11-50"}},
	{Label: "51-200", Keywords: []string{"51-200", "mid-sized"}},
	{Label: "201-500", Keywords: []string{"201-500"}},
	{Label: "501+", Keywords: []string{"501+", "500+", "large team", "enterprise"}},
}

// socialPlatforms is scanned in this order; the domain tokens are matched case-insensitively.
var socialPlatforms = []struct {
	Label  string
	Tokens []string
}{
	{Label: "LinkedIn", Tokens: []string{"linkedin.com"}},
	{Label: "Twitter", Tokens: []string{"twitter.com"}},
	{Label: "Facebook", Tokens: []string{"facebook.com"}},
	{Label: "Instagram", Tokens: []string{"instagram.com"}},
	{Label: "YouTube", Tokens: []string{"youtube.com", "youtu.be"}},
	{Label: "GitHub", Tokens: []string{"github.com"}},
	{Label: "TikTok", Tokens: []string{"tiktok.com"}},
}
