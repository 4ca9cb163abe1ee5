package cipher

// playerScript is a trimmed player asset. Its decipher routine reverses the
// signature, drops two characters, swaps the first with index 3 and passes the
// result through an identity helper.
const playerScript = `var _yt_player={};(function(g){var window=this;
var Zq={VN:function(a,b){a.splice(0,b)},
Rm:function(a){a.reverse()},
Xk:function(a,b){var c=a[0];a[0]=a[b%a.length];a[b%a.length]=c}};
function Wd(a){return a}
var Ty=function(a){a=a.split("");Zq.Rm(a,57);Zq.VN(a,2);Zq.Xk(a,3);a=Wd(a);return a.join("")};
g.other=function(){return{x:1}};
})(_yt_player);
`

// playerScriptFallbacks defines the helpers without the var and function
// keywords.
const playerScriptFallbacks = `(function(g){var q=1;Zq={Rm:function(a){a.reverse()}};
g.x=1,Wd=function(a){return a};
var Ty=function(a){a=a.split("");Zq.Rm(a,1);a=Wd(a);return a.join("")};})(_yt_player);`

const assetPath = "/s/player/abc123/player_ias.vflset/en_US/base.js"
